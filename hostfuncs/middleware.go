package hostfuncs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Middleware wraps an ImportFunc to add cross-cutting behavior. It receives
// the import name so it can label what it records.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(name string, next ImportFunc) ImportFunc

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware converts a panic inside an import into a TrapError
// instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(name string, next ImportFunc) ImportFunc {
		return func(ctx context.Context, call *Call, stack []uint64) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = NewPanicError(name, r)
				}
			}()
			return next(ctx, call, stack)
		}
	}
}

// LoggingMiddleware logs every import invocation at debug level and every
// failure at warn level.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(name string, next ImportFunc) ImportFunc {
		return func(ctx context.Context, call *Call, stack []uint64) error {
			start := time.Now()
			err := next(ctx, call, stack)
			if err != nil {
				logger.Warn("host import failed", zap.String("import", name), zap.Error(err))
				return err
			}
			logger.Debug("host import", zap.String("import", name), zap.Duration("took", time.Since(start)))
			return nil
		}
	}
}

// TrapMiddleware labels every error an import returns with the import name.
func TrapMiddleware() Middleware {
	return func(name string, next ImportFunc) ImportFunc {
		return func(ctx context.Context, call *Call, stack []uint64) error {
			if err := next(ctx, call, stack); err != nil {
				return NewTrapError(name, err)
			}
			return nil
		}
	}
}
