package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/domain/entities"
	"github.com/c123chain/cdk-go/hostfuncs"
	"github.com/c123chain/cdk-go/manifest"
)

// ErrUnknownEntry is returned by Call for a function the manifest does not
// list.
var ErrUnknownEntry = errors.New("unknown entry point")

// Executor manages the wazero runtime contracts are loaded into.
type Executor struct {
	runtime    wazero.Runtime
	registry   *hostfuncs.Registry
	store      hostfuncs.KVStore
	env        *hostfuncs.Env
	logger     *zap.Logger
	moduleName string
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{moduleName: DefaultModuleName}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.registry == nil {
		e.registry = hostfuncs.DefaultRegistry(hostfuncs.LoggingMiddleware(e.logger))
	}
	if e.store == nil {
		e.store = hostfuncs.NewMemoryStore()
	}
	if e.env == nil {
		e.env = &hostfuncs.Env{Ledger: hostfuncs.NewLedger(nil)}
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor and every contract it
// loaded.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Env returns the chain state shared by loaded contracts.
func (e *Executor) Env() *hostfuncs.Env { return e.env }

// Store returns the storage backend shared by loaded contracts.
func (e *Executor) Store() hostfuncs.KVStore { return e.store }

// Instance is an instantiated contract. Invocations on one instance are
// serialized.
type Instance struct {
	executor *Executor
	module   api.Module
	manifest *manifest.Manifest

	mu sync.Mutex
}

// LoadContract compiles and instantiates a contract binary. m may be nil,
// in which case Call is unavailable and exports are not checked.
func (e *Executor) LoadContract(ctx context.Context, wasmBytes []byte, m *manifest.Manifest) (*Instance, error) {
	if m != nil {
		if err := manifest.Validate(m); err != nil {
			return nil, err
		}
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}
	if err := e.checkImports(compiled); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}
	if err := checkExports(compiled, m); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	// Contracts are reactors: run _initialize, never _start. Instances are
	// anonymous so one binary can be loaded more than once.
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	name := ""
	if m != nil {
		name = m.Package
	}
	e.logger.Debug("contract loaded", zap.String("package", name), zap.Int("entries", len(compiled.ExportedFunctions())))

	return &Instance{executor: e, module: mod, manifest: m}, nil
}

// Manifest returns the contract's ABI table, or nil.
func (i *Instance) Manifest() *manifest.Manifest { return i.manifest }

// Close releases the instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// Outcome is everything observed during one invocation.
type Outcome struct {
	ID     uuid.UUID
	Export string

	// Result is the value passed to return_contract; Returned reports
	// whether there was one.
	Result   entities.ContractResult
	Returned bool

	Events    []*entities.Event
	Debug     []hostfuncs.DebugLine
	Destroyed bool
	Migrated  *entities.Address

	// Aborted is set when the contract called panic_contract.
	Aborted      bool
	AbortMessage string

	// Trap is a failed import, a wasm trap or any other error that ended
	// the invocation. It is nil after a clean return and, for aborts,
	// holds the hostfuncs.AbortError.
	Trap error

	Duration time.Duration
}

// Failed reports whether the invocation stopped abnormally.
func (o *Outcome) Failed() bool {
	return o.Aborted || o.Trap != nil
}

// Err returns the contract-level error: the trap, the abort or the Err
// result. It is nil for an Ok result.
func (o *Outcome) Err() error {
	switch {
	case o.Trap != nil:
		return o.Trap
	case o.Returned && o.Result.IsErr():
		return errors.New(o.Result.Message)
	}
	return nil
}

// Invoke calls export with input as the invocation payload. The returned
// error reports host failures only; contract failures are in the Outcome.
func (i *Instance) Invoke(ctx context.Context, export string, input []byte) (*Outcome, error) {
	fn := i.module.ExportedFunction(export)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found", export)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	e := i.executor
	id := uuid.New()
	logger := e.logger.With(zap.Stringer("invocation", id), zap.String("export", export))

	session := hostfuncs.NewSession()
	call := &hostfuncs.Call{
		Memory:  moduleMemory{module: i.module},
		Env:     e.env,
		Store:   e.store,
		Session: session,
		Input:   input,
		Logger:  logger,
	}

	start := time.Now()
	_, err := fn.Call(withCall(ctx, call, id))
	out := &Outcome{ID: id, Export: export, Trap: err, Duration: time.Since(start)}

	out.Result, out.Returned = session.Result()
	out.Events = session.Events()
	out.Debug = session.Debug()
	out.Destroyed = session.Destroyed()
	if addr, ok := session.Migrated(); ok {
		out.Migrated = &addr
	}
	out.AbortMessage, out.Aborted = session.Aborted()

	switch {
	case out.Aborted:
		logger.Info("contract aborted", zap.String("message", out.AbortMessage), zap.Duration("took", out.Duration))
	case err != nil:
		logger.Warn("contract trapped", zap.Error(err), zap.Duration("took", out.Duration))
	default:
		logger.Debug("invocation finished", zap.Bool("returned", out.Returned), zap.Int("events", len(out.Events)), zap.Duration("took", out.Duration))
	}
	if n := session.DroppedDebug(); n > 0 {
		logger.Warn("debug output truncated", zap.Int("dropped", n))
	}

	return out, nil
}

// Call encodes args according to the manifest entry of function and
// invokes it.
func (i *Instance) Call(ctx context.Context, function string, args ...any) (*Outcome, error) {
	if i.manifest == nil {
		return nil, fmt.Errorf("%s: contract loaded without a manifest", function)
	}
	entry, ok := i.manifest.Find(function)
	if !ok {
		return nil, fmt.Errorf("%s: %w", function, ErrUnknownEntry)
	}
	input, err := manifest.EncodeArgs(entry, args...)
	if err != nil {
		return nil, err
	}
	return i.Invoke(ctx, entry.ExportName, input)
}
