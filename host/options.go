package host

import (
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/hostfuncs"
)

// DefaultModuleName is the import module contracts link against.
const DefaultModuleName = "env"

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithRegistry replaces the import registry.
func WithRegistry(registry *hostfuncs.Registry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithLogger sets the logger for executor diagnostics and guest debug
// output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithStore sets the storage backend shared by all loaded contracts.
func WithStore(store hostfuncs.KVStore) Option {
	return func(e *Executor) {
		e.store = store
	}
}

// WithEnv sets the chain state contracts observe.
func WithEnv(env *hostfuncs.Env) Option {
	return func(e *Executor) {
		e.env = env
	}
}

// WithModuleName changes the import module name.
func WithModuleName(name string) Option {
	return func(e *Executor) {
		e.moduleName = name
	}
}
