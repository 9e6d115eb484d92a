package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/codec"
	"github.com/c123chain/cdk-go/domain/entities"
)

var errNoEnv = errors.New("invocation has no environment")

// Status codes returned to the guest by send and migrate_contract.
const (
	StatusOK     int32 = 0
	StatusFailed int32 = 1
)

// GetInput implements get_input() -> region.
func GetInput(ctx context.Context, call *Call, stack []uint64) error {
	ptr, err := NewRegion(ctx, call.Memory, call.Input)
	if err != nil {
		return err
	}
	setU32(stack, ptr)
	return nil
}

// ReadDB implements read_db(key, value, offset) -> i32. It returns the full
// length of the stored value, or -1 when the key is absent, and copies the
// bytes from offset on into the value region up to its capacity.
func ReadDB(_ context.Context, call *Call, stack []uint64) error {
	key, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	value, found, err := call.Store.Get(key)
	if err != nil {
		return fmt.Errorf("storage get: %w", err)
	}
	if !found {
		setI32(stack, -1)
		return nil
	}
	if len(value) > math.MaxInt32 {
		return fmt.Errorf("stored value of %d bytes exceeds i32 length", len(value))
	}

	offset := int(arg(stack, 2))
	tail := []byte{}
	if offset < len(value) {
		tail = value[offset:]
	}
	if _, err := FillRegion(call.Memory, arg(stack, 1), tail); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	setI32(stack, int32(len(value)))
	return nil
}

// WriteDB implements write_db(key, value).
func WriteDB(_ context.Context, call *Call, stack []uint64) error {
	key, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	value, err := ReadRegion(call.Memory, arg(stack, 1))
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	if err := call.Store.Set(key, value); err != nil {
		return fmt.Errorf("storage set: %w", err)
	}
	return nil
}

// DeleteDB implements delete_db(key).
func DeleteDB(_ context.Context, call *Call, stack []uint64) error {
	key, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	if err := call.Store.Delete(key); err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	return nil
}

// Send implements send(to, amount) -> i32, moving amount from the running
// contract to the recipient. A refused transfer is reported to the guest,
// not trapped.
func Send(_ context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	rawTo, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	to, err := entities.AddressFromBytes(rawTo)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	rawAmount, err := ReadRegion(call.Memory, arg(stack, 1))
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if len(rawAmount) != entities.Int128Size {
		return fmt.Errorf("amount: got %d bytes, want %d", len(rawAmount), entities.Int128Size)
	}
	amount := entities.U128FromBytes(rawAmount)

	if call.Env.Ledger == nil {
		setI32(stack, StatusFailed)
		return nil
	}
	if err := call.Env.Ledger.Transfer(call.Env.Self, to, amount); err != nil {
		call.logger().Info("send refused", zap.Stringer("to", to), zap.Stringer("amount", amount), zap.Error(err))
		setI32(stack, StatusFailed)
		return nil
	}
	setI32(stack, StatusOK)
	return nil
}

func addressImport(pick func(*Env) entities.Address) ImportFunc {
	return func(_ context.Context, call *Call, stack []uint64) error {
		if call.Env == nil {
			return errNoEnv
		}
		addr := pick(call.Env)
		return FillRegionExact(call.Memory, arg(stack, 0), addr[:])
	}
}

// GetCreator implements get_creator(out).
var GetCreator = addressImport(func(e *Env) entities.Address { return e.Creator })

// GetInvoker implements get_invoker(out).
var GetInvoker = addressImport(func(e *Env) entities.Address { return e.Invoker })

// GetPreCaller implements get_pre_caller(out).
var GetPreCaller = addressImport(func(e *Env) entities.Address { return e.PreCaller })

// SelfAddress implements self_address(out).
var SelfAddress = addressImport(func(e *Env) entities.Address { return e.Self })

// GetBlockHeader implements get_block_header(out).
func GetBlockHeader(_ context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	sink := codec.NewSink(entities.BlockHeaderSize)
	sink.WriteBlockHeader(call.Env.Block)
	return FillRegionExact(call.Memory, arg(stack, 0), sink.Bytes())
}

// CallContract implements call_contract(addr, input) -> region. A failed
// nested call returns 0 to the guest.
func CallContract(ctx context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	rawAddr, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	target, err := entities.AddressFromBytes(rawAddr)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	input, err := ReadRegion(call.Memory, arg(stack, 1))
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	if call.Env.Caller == nil {
		setU32(stack, 0)
		return nil
	}
	out, err := call.Env.Caller.CallContract(ctx, call.Env.Self, target, input)
	if err != nil {
		call.logger().Info("nested call failed", zap.Stringer("target", target), zap.Error(err))
		setU32(stack, 0)
		return nil
	}
	ptr, err := NewRegion(ctx, call.Memory, out)
	if err != nil {
		return err
	}
	setU32(stack, ptr)
	return nil
}

// NotifyContract implements notify_contract(event).
func NotifyContract(_ context.Context, call *Call, stack []uint64) error {
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("event: %w", err)
	}
	ev, err := codec.DecodeEvent(raw)
	if err != nil {
		return err
	}
	call.Session.AddEvent(ev)
	return nil
}

// ReturnContract implements return_contract(result).
func ReturnContract(_ context.Context, call *Call, stack []uint64) error {
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("result: %w", err)
	}
	result, err := codec.DecodeContractResult(raw)
	if err != nil {
		return err
	}
	if !call.Session.SetResult(raw, result) {
		return errors.New("result already returned")
	}
	return nil
}

// PanicContract implements panic_contract(msg). It always returns an
// AbortError so the runtime stops the contract.
func PanicContract(_ context.Context, call *Call, stack []uint64) error {
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	msg := string(raw)
	call.Session.Abort(msg)
	return &AbortError{Message: msg}
}

// DebugPrint implements debug_print(msg).
func DebugPrint(_ context.Context, call *Call, stack []uint64) error {
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	call.Session.AddDebug(string(raw))
	call.logger().Debug("contract debug", zap.ByteString("line", raw))
	return nil
}

// MigrateContract implements migrate_contract(args, out) -> i32. The new
// address is written to out on success.
func MigrateContract(ctx context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("args: %w", err)
	}
	src := codec.NewSource(raw)
	meta, err := src.ReadContractMeta()
	if err == nil {
		err = src.Finish("contract meta")
	}
	if err != nil {
		return err
	}

	if call.Env.Migrator == nil {
		setI32(stack, StatusFailed)
		return nil
	}
	if err := meta.Validate(); err != nil {
		call.logger().Info("migration rejected", zap.Error(err))
		setI32(stack, StatusFailed)
		return nil
	}
	addr, err := call.Env.Migrator.Migrate(ctx, call.Env.Self, meta)
	if err != nil {
		call.logger().Info("migration failed", zap.String("name", meta.Name), zap.Error(err))
		setI32(stack, StatusFailed)
		return nil
	}
	if err := FillRegionExact(call.Memory, arg(stack, 1), addr[:]); err != nil {
		return fmt.Errorf("out: %w", err)
	}
	call.Session.SetMigrated(addr)
	setI32(stack, StatusOK)
	return nil
}

// DestroyContract implements destroy_contract().
func DestroyContract(_ context.Context, call *Call, _ []uint64) error {
	call.Session.MarkDestroyed()
	return nil
}

// GetValidatorPower implements get_validator_power(validators) -> region.
func GetValidatorPower(ctx context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	raw, err := ReadRegion(call.Memory, arg(stack, 0))
	if err != nil {
		return fmt.Errorf("validators: %w", err)
	}
	src := codec.NewSource(raw)
	validators, err := src.ReadAddresses()
	if err == nil {
		err = src.Finish("validators")
	}
	if err != nil {
		return err
	}

	powers := make([]entities.U128, len(validators))
	for i, v := range validators {
		powers[i] = call.Env.Validators[v]
	}
	sink := codec.NewSink(4 + len(powers)*entities.Int128Size)
	sink.WriteU128s(powers)

	ptr, err := NewRegion(ctx, call.Memory, sink.Bytes())
	if err != nil {
		return err
	}
	setU32(stack, ptr)
	return nil
}

// TotalPower implements total_power(out).
func TotalPower(_ context.Context, call *Call, stack []uint64) error {
	if call.Env == nil {
		return errNoEnv
	}
	total, err := call.Env.TotalPower()
	if err != nil {
		return err
	}
	raw := total.Bytes()
	return FillRegionExact(call.Memory, arg(stack, 0), raw[:])
}
