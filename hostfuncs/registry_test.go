package hostfuncs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func noop(context.Context, *Call, []uint64) error { return nil }

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Empty(t, reg.Names())
}

func TestNewRegistry_WithImport(t *testing.T) {
	reg, err := NewRegistry(
		WithImport(Import{Name: "echo", Params: 1, Results: 1, Func: noop}),
	)
	require.NoError(t, err)

	assert.True(t, reg.Has("echo"))
	assert.False(t, reg.Has("nonexistent"))
	assert.Equal(t, []string{"echo"}, reg.Names())

	imp, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, 1, imp.StackSize())
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []RegistryOption
		want string
	}{
		{
			name: "duplicate",
			opts: []RegistryOption{
				WithImport(Import{Name: "test", Func: noop}),
				WithImport(Import{Name: "test", Func: noop}),
			},
			want: "duplicate import name",
		},
		{
			name: "empty name",
			opts: []RegistryOption{WithImport(Import{Func: noop})},
			want: "cannot be empty",
		},
		{
			name: "nil func",
			opts: []RegistryOption{WithImport(Import{Name: "x"})},
			want: "no implementation",
		},
		{
			name: "bundle collision",
			opts: []RegistryOption{WithBundle(StorageBundle()), WithImport(Import{Name: "read_db", Func: noop})},
			want: "duplicate import name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistry_Invoke(t *testing.T) {
	reg, err := NewRegistry(
		WithImport(Import{Name: "inc", Params: 1, Results: 1, Func: func(_ context.Context, _ *Call, stack []uint64) error {
			stack[0]++
			return nil
		}}),
	)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		stack := []uint64{41}
		require.NoError(t, reg.Invoke(context.Background(), "inc", &Call{}, stack))
		assert.Equal(t, uint64(42), stack[0])
	})

	t.Run("not found", func(t *testing.T) {
		err := reg.Invoke(context.Background(), "unknown", &Call{}, nil)
		var trap *TrapError
		require.ErrorAs(t, err, &trap)
		assert.Equal(t, "unknown", trap.Import)
		assert.ErrorIs(t, err, ErrUnknownImport)
	})

	t.Run("short stack", func(t *testing.T) {
		err := reg.Invoke(context.Background(), "inc", &Call{}, nil)
		assert.ErrorContains(t, err, "need 1")
	})
}

func TestDefaultRegistry_ImportSet(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{
		"call_contract", "debug_print", "delete_db", "destroy_contract",
		"get_block_header", "get_creator", "get_input", "get_invoker",
		"get_pre_caller", "get_validator_power", "migrate_contract",
		"notify_contract", "panic_contract", "read_db", "return_contract",
		"self_address", "send", "total_power", "write_db",
	}, reg.Names())
	assert.Len(t, reg.Imports(), 19)
}

func TestDefaultRegistry_LabelsTraps(t *testing.T) {
	call, _ := newTestCall()
	reg := DefaultRegistry()

	err := reg.Invoke(context.Background(), "write_db", call, []uint64{0, 0})
	var trap *TrapError
	require.ErrorAs(t, err, &trap)
	assert.Equal(t, "write_db", trap.Import)

	// Aborts pass through unlabelled.
	call2, mem := newTestCall()
	err = reg.Invoke(context.Background(), "panic_contract", call2, []uint64{uint64(mem.region(t, []byte("stop")))})
	var abort *AbortError
	require.ErrorAs(t, err, &abort)
	assert.False(t, errors.As(err, &trap))
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	panicking := func(context.Context, *Call, []uint64) error {
		panic("test panic")
	}

	wrapped := PanicRecoveryMiddleware()("boom", panicking)

	err := wrapped(context.Background(), &Call{}, nil)
	var trap *TrapError
	require.ErrorAs(t, err, &trap)
	assert.Equal(t, "boom", trap.Import)
	assert.Contains(t, err.Error(), "test panic")
}

func TestPanicRecoveryMiddleware_NoPanic(t *testing.T) {
	wrapped := PanicRecoveryMiddleware()("ok", noop)
	assert.NoError(t, wrapped(context.Background(), &Call{}, nil))
}

func TestMiddlewareOrder_FIFO(t *testing.T) {
	var callOrder []string
	record := func(label string) Middleware {
		return func(name string, next ImportFunc) ImportFunc {
			return func(ctx context.Context, call *Call, stack []uint64) error {
				callOrder = append(callOrder, label+":"+name)
				return next(ctx, call, stack)
			}
		}
	}

	reg, err := NewRegistry(
		WithMiddleware(record("first"), record("second")),
		WithImport(Import{Name: "f", Func: func(context.Context, *Call, []uint64) error {
			callOrder = append(callOrder, "import")
			return nil
		}}),
	)
	require.NoError(t, err)
	require.NoError(t, reg.Invoke(context.Background(), "f", &Call{}, nil))

	assert.Equal(t, []string{"first:f", "second:f", "import"}, callOrder)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	ok := LoggingMiddleware(logger)("ok", noop)
	require.NoError(t, ok(context.Background(), &Call{}, nil))

	failing := LoggingMiddleware(logger)("bad", func(context.Context, *Call, []uint64) error {
		return errors.New("nope")
	})
	require.Error(t, failing(context.Background(), &Call{}, nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "host import", entries[0].Message)
	assert.Equal(t, "ok", entries[0].ContextMap()["import"])
	assert.Equal(t, "host import failed", entries[1].Message)
	assert.Equal(t, "bad", entries[1].ContextMap()["import"])
}

func TestNewTrapError(t *testing.T) {
	base := errors.New("disk full")
	err := NewTrapError("write_db", base)
	assert.Equal(t, "host import write_db: disk full", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Same(t, err, NewTrapError("other", err))

	abort := &AbortError{Message: "x"}
	assert.Same(t, error(abort), NewTrapError("panic_contract", abort))
	assert.Equal(t, "contract aborted: x", abort.Error())
}
