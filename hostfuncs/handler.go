package hostfuncs

import (
	"context"

	"go.uber.org/zap"
)

// Call is the state one contract invocation runs against.
type Call struct {
	Memory  Memory
	Env     *Env
	Store   KVStore
	Session *Session

	// Input is the payload returned by get_input.
	Input []byte

	// Logger receives debug_print lines and import diagnostics. Nil means
	// zap.NewNop().
	Logger *zap.Logger
}

func (c *Call) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// ImportFunc implements one env import. Arguments are read from stack and
// results written back to stack[0:]. A non-nil error traps the contract.
type ImportFunc func(ctx context.Context, call *Call, stack []uint64) error

// Import describes one host import. All parameters and results are i32.
type Import struct {
	Name    string
	Params  int
	Results int
	Func    ImportFunc
}

// StackSize returns the stack length the import needs.
func (imp Import) StackSize() int {
	return max(imp.Params, imp.Results)
}

func arg(stack []uint64, i int) uint32 {
	return uint32(stack[i])
}

func setI32(stack []uint64, v int32) {
	stack[0] = uint64(uint32(v))
}

func setU32(stack []uint64, v uint32) {
	stack[0] = uint64(v)
}
