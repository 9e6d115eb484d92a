// Package contracttest provides a test harness for contracts.
//
// The harness runs contract code natively: hostcalls are served by the
// hostfuncs implementations and guest memory is the internal/abi arena, so
// generated dispatchers and the runtime package can be exercised with
// ordinary go test.
package contracttest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/codec"
	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/hostfuncs"
	"github.com/c123chain/cdk-go/internal/abi"
	"github.com/c123chain/cdk-go/internal/hostcall"
	"github.com/c123chain/cdk-go/manifest"
)

// hostcall.SetHandler is process-wide; invocations are serialized across
// every Harness.
var invocationMu sync.Mutex

// Harness runs contract entry points against an in-process host.
type Harness struct {
	env      *hostfuncs.Env
	store    hostfuncs.KVStore
	registry *hostfuncs.Registry
	logger   *zap.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithEnv sets the chain state contracts observe.
func WithEnv(env *hostfuncs.Env) Option {
	return func(h *Harness) { h.env = env }
}

// WithStore sets the storage backend. The default is a fresh
// hostfuncs.MemoryStore.
func WithStore(store hostfuncs.KVStore) Option {
	return func(h *Harness) { h.store = store }
}

// WithLogger routes import diagnostics and debug lines to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRegistry replaces the import registry, e.g. to add middleware.
func WithRegistry(reg *hostfuncs.Registry) Option {
	return func(h *Harness) { h.registry = reg }
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		env:    &hostfuncs.Env{Ledger: hostfuncs.NewLedger(nil)},
		store:  hostfuncs.NewMemoryStore(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = hostfuncs.DefaultRegistry()
	}
	return h
}

// Env returns the harness environment. Changes apply to later calls.
func (h *Harness) Env() *hostfuncs.Env { return h.env }

// Store returns the storage backend.
func (h *Harness) Store() hostfuncs.KVStore { return h.store }

// Outcome is everything observed during one invocation.
type Outcome struct {
	// Result is the value passed to return_contract; Returned reports
	// whether there was one.
	Result   entities.ContractResult
	Returned bool

	Events    []*entities.Event
	Debug     []hostfuncs.DebugLine
	Destroyed bool

	// Aborted is set when the contract called panic_contract. Fault holds
	// the runtime fault raised afterward, when there was one.
	Aborted      bool
	AbortMessage string
	Fault        *cdkerrors.Fault

	// Trap is an import failure or an unexpected panic.
	Trap error

	// LiveAllocations counts arena allocations still tracked when the entry
	// point returned normally. A well-behaved contract leaves none.
	LiveAllocations int
}

// Failed reports whether the invocation stopped abnormally.
func (o *Outcome) Failed() bool {
	return o.Aborted || o.Fault != nil || o.Trap != nil
}

// Call runs entry with input as the invocation payload. entry is usually a
// generated dispatcher.
func (h *Harness) Call(entry func(), input []byte) *Outcome {
	invocationMu.Lock()
	defer invocationMu.Unlock()

	session := hostfuncs.NewSession()
	inv := &invocation{
		registry: h.registry,
		call: &hostfuncs.Call{
			Memory:  arenaMemory{},
			Env:     h.env,
			Store:   h.store,
			Session: session,
			Input:   input,
			Logger:  h.logger,
		},
	}

	abi.FreeAllTracked()
	restore := hostcall.SetHandler(inv)
	defer restore()
	defer abi.FreeAllTracked()

	out := &Outcome{}
	completed := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				if f, isFault := cdkerrors.AsFault(r); isFault {
					out.Fault = f
					return
				}
				if err, isErr := r.(error); isErr {
					out.Trap = err
					return
				}
				out.Trap = fmt.Errorf("panic: %v", r)
			}
		}()
		entry()
		return true
	}()
	if completed {
		out.LiveAllocations, _ = abi.Stats()
	}

	out.Result, out.Returned = session.Result()
	out.Events = session.Events()
	out.Debug = session.Debug()
	out.Destroyed = session.Destroyed()
	out.AbortMessage, out.Aborted = session.Aborted()
	return out
}

// CallArgs encodes args with the wire codec and runs entry. Supported
// argument types are those the ABI generator accepts.
func (h *Harness) CallArgs(entry func(), args ...any) *Outcome {
	input, err := EncodeArgs(args...)
	if err != nil {
		panic(err)
	}
	return h.Call(entry, input)
}

// EncodeArgs encodes values in order with the wire codec.
func EncodeArgs(args ...any) ([]byte, error) {
	sink := codec.NewSink(64)
	for i, a := range args {
		tag, ok := manifest.TagOf(a)
		if !ok {
			return nil, fmt.Errorf("argument %d: unsupported type %T", i, a)
		}
		if err := manifest.EncodeValue(sink, tag, a); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return sink.Bytes(), nil
}

// invocation implements hostcall.Handler for one Call.
type invocation struct {
	registry *hostfuncs.Registry
	call     *hostfuncs.Call
}

// invoke runs an import. Failures other than panic_contract's abort are
// raised as panics, which stops the contract the way a wasm trap would.
func (inv *invocation) invoke(name string, args ...uint32) uint64 {
	stack := make([]uint64, max(len(args), 1))
	for i, a := range args {
		stack[i] = uint64(a)
	}
	err := inv.registry.Invoke(context.Background(), name, inv.call, stack)
	if err != nil {
		var abort *hostfuncs.AbortError
		if errors.As(err, &abort) {
			return 0
		}
		panic(err)
	}
	return stack[0]
}

func (inv *invocation) GetInput() uint32 { return uint32(inv.invoke("get_input")) }

func (inv *invocation) ReadDB(key, value, offset uint32) int32 {
	return int32(uint32(inv.invoke("read_db", key, value, offset)))
}

func (inv *invocation) WriteDB(key, value uint32) { inv.invoke("write_db", key, value) }
func (inv *invocation) DeleteDB(key uint32)       { inv.invoke("delete_db", key) }

func (inv *invocation) Send(to, amount uint32) int32 {
	return int32(uint32(inv.invoke("send", to, amount)))
}

func (inv *invocation) GetCreator(out uint32)     { inv.invoke("get_creator", out) }
func (inv *invocation) GetInvoker(out uint32)     { inv.invoke("get_invoker", out) }
func (inv *invocation) GetPreCaller(out uint32)   { inv.invoke("get_pre_caller", out) }
func (inv *invocation) SelfAddress(out uint32)    { inv.invoke("self_address", out) }
func (inv *invocation) GetBlockHeader(out uint32) { inv.invoke("get_block_header", out) }

func (inv *invocation) CallContract(addr, input uint32) uint32 {
	return uint32(inv.invoke("call_contract", addr, input))
}

func (inv *invocation) NotifyContract(event uint32)  { inv.invoke("notify_contract", event) }
func (inv *invocation) ReturnContract(result uint32) { inv.invoke("return_contract", result) }
func (inv *invocation) PanicContract(msg uint32)     { inv.invoke("panic_contract", msg) }
func (inv *invocation) DebugPrint(msg uint32)        { inv.invoke("debug_print", msg) }

func (inv *invocation) MigrateContract(args, out uint32) int32 {
	return int32(uint32(inv.invoke("migrate_contract", args, out)))
}

func (inv *invocation) DestroyContract() { inv.invoke("destroy_contract") }

func (inv *invocation) GetValidatorPower(validators uint32) uint32 {
	return uint32(inv.invoke("get_validator_power", validators))
}

func (inv *invocation) TotalPower(out uint32) { inv.invoke("total_power", out) }

// AssertOk asserts the invocation returned an Ok result and returns its data.
func AssertOk(t *testing.T, o *Outcome) []byte {
	t.Helper()
	if o.Failed() {
		t.Fatalf("invocation failed: abort=%q fault=%v trap=%v", o.AbortMessage, o.Fault, o.Trap)
	}
	if !o.Returned {
		t.Fatalf("contract returned no result")
	}
	if !o.Result.IsOk() {
		t.Fatalf("expected Ok result, got Err(%q)", o.Result.Message)
	}
	return o.Result.Data
}

// AssertErr asserts the invocation returned an Err result and returns its
// message.
func AssertErr(t *testing.T, o *Outcome) string {
	t.Helper()
	if o.Failed() {
		t.Fatalf("invocation failed: abort=%q fault=%v trap=%v", o.AbortMessage, o.Fault, o.Trap)
	}
	if !o.Returned || o.Result.IsOk() {
		t.Fatalf("expected Err result, got %+v (returned=%v)", o.Result, o.Returned)
	}
	return o.Result.Message
}

// AssertAborted asserts the contract aborted with message.
func AssertAborted(t *testing.T, o *Outcome, message string) {
	t.Helper()
	if !o.Aborted {
		t.Fatalf("expected abort %q, contract did not abort (trap=%v)", message, o.Trap)
	}
	if o.AbortMessage != message {
		t.Errorf("abort message: expected %q, got %q", message, o.AbortMessage)
	}
}

// AssertNoLeaks asserts the contract released every region it allocated.
func AssertNoLeaks(t *testing.T, o *Outcome) {
	t.Helper()
	if o.LiveAllocations != 0 {
		t.Errorf("expected no live allocations, got %d", o.LiveAllocations)
	}
}
