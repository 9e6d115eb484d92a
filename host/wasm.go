package host

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero/api"

	"github.com/c123chain/cdk-go/hostfuncs"
)

var errNoInvocation = errors.New("host import called outside an invocation")

// registerHostFunctions exports every registry import from the env module.
// Import errors are raised as panics; wazero turns them into the error
// returned by the guest call.
func (e *Executor) registerHostFunctions(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(e.moduleName)

	for _, imp := range e.registry.Imports() {
		name := imp.Name
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, _ api.Module, stack []uint64) {
				call := callFrom(ctx)
				if call == nil {
					panic(&hostfuncs.TrapError{Import: name, Err: errNoInvocation})
				}
				if err := e.registry.Invoke(ctx, name, call, stack); err != nil {
					panic(err)
				}
			}), i32s(imp.Params), i32s(imp.Results)).
			WithName(name).
			Export(name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

func i32s(n int) []api.ValueType {
	types := make([]api.ValueType, n)
	for i := range types {
		types[i] = api.ValueTypeI32
	}
	return types
}
