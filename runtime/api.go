package runtime

import (
	"errors"
	"fmt"

	"github.com/c123chain/cdk-go/codec"
	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/internal/abi"
	"github.com/c123chain/cdk-go/internal/hostcall"
)

// ErrMigrationFailed is returned when the host refuses a migration.
var ErrMigrationFailed = errors.New("host rejected contract migration")

// ExternalAPI wraps the non-storage hostcalls.
type ExternalAPI struct{}

// Input returns the payload of the current invocation.
func (a *ExternalAPI) Input() []byte {
	owned := abi.TakeOwnership(hostcall.GetInput())
	return owned.Consume()
}

// Send moves amount from the contract to the given account and reports
// whether the host accepted the transfer.
func (a *ExternalAPI) Send(to entities.Address, amount entities.U128) bool {
	addr := abi.BuildRegion(to[:])
	defer addr.Release()
	raw := amount.Bytes()
	amt := abi.BuildRegion(raw[:])
	defer amt.Release()
	return hostcall.Send(addr.Ptr(), amt.Ptr()) == 0
}

// GetCreator returns the account that deployed the contract.
func (a *ExternalAPI) GetCreator() entities.Address {
	return queryAddress("creator", hostcall.GetCreator)
}

// GetInvoker returns the account that signed the current transaction.
func (a *ExternalAPI) GetInvoker() entities.Address {
	return queryAddress("invoker", hostcall.GetInvoker)
}

// GetPreCaller returns the immediate caller, which is a contract during a
// nested invocation.
func (a *ExternalAPI) GetPreCaller() entities.Address {
	return queryAddress("pre-caller", hostcall.GetPreCaller)
}

// SelfAddress returns the address of the running contract.
func (a *ExternalAPI) SelfAddress() entities.Address {
	return queryAddress("self address", hostcall.SelfAddress)
}

func queryAddress(what string, call func(out uint32)) entities.Address {
	out := abi.AllocateRegion(entities.AddressLength)
	defer out.Release()
	call(out.Ptr())
	addr, err := entities.AddressFromBytes(out.Bytes())
	if err != nil {
		Abort(fmt.Sprintf("host returned malformed %s: %v", what, err))
	}
	return addr
}

// GetBlockHeader returns the height and timestamp of the current block.
func (a *ExternalAPI) GetBlockHeader() entities.BlockHeader {
	out := abi.AllocateRegion(entities.BlockHeaderSize)
	defer out.Release()
	hostcall.GetBlockHeader(out.Ptr())
	header, err := codec.NewSource(out.Bytes()).ReadBlockHeader()
	if err != nil {
		Abort(fmt.Sprintf("host returned malformed block header: %v", err))
	}
	return header
}

// CallContract invokes another contract with input and returns its result
// bytes. ok is false when the host reports failure.
func (a *ExternalAPI) CallContract(addr entities.Address, input []byte) (result []byte, ok bool) {
	target := abi.BuildRegion(addr[:])
	defer target.Release()
	in := abi.BuildRegion(input)
	defer in.Release()

	ptr := hostcall.CallContract(target.Ptr(), in.Ptr())
	if ptr == 0 {
		return nil, false
	}
	owned := abi.TakeOwnership(ptr)
	return owned.Consume(), true
}

// Notify emits an event.
func (a *ExternalAPI) Notify(ev *entities.Event) {
	v := abi.BuildRegion(codec.EncodeEvent(ev))
	defer v.Release()
	hostcall.NotifyContract(v.Ptr())
}

// Abort terminates the invocation with message.
func (a *ExternalAPI) Abort(message string) {
	Abort(message)
}

// Abort terminates the invocation with message. It does not return.
func Abort(message string) {
	abi.Fatal(&cdkerrors.Fault{Kind: cdkerrors.Abort, Message: message})
}

// MigrateContract replaces the contract's code and returns the new address.
func (a *ExternalAPI) MigrateContract(meta entities.ContractMeta) (entities.Address, error) {
	if err := meta.Validate(); err != nil {
		return entities.Address{}, err
	}
	sink := codec.NewSink(len(meta.Code) + 64)
	sink.WriteContractMeta(meta)
	args := abi.BuildRegion(sink.Bytes())
	defer args.Release()
	out := abi.AllocateRegion(entities.AddressLength)
	defer out.Release()

	if hostcall.MigrateContract(args.Ptr(), out.Ptr()) != 0 {
		return entities.Address{}, ErrMigrationFailed
	}
	addr, err := entities.AddressFromBytes(out.Bytes())
	if err != nil {
		return entities.Address{}, fmt.Errorf("migrate contract: %w", err)
	}
	return addr, nil
}

// DestroyContract removes the running contract.
func (a *ExternalAPI) DestroyContract() {
	hostcall.DestroyContract()
}

// GetValidatorPower returns the stake of each validator, in order.
func (a *ExternalAPI) GetValidatorPower(validators []entities.Address) ([]entities.U128, error) {
	sink := codec.NewSink(4 + len(validators)*entities.AddressLength)
	sink.WriteAddresses(validators)
	in := abi.BuildRegion(sink.Bytes())
	defer in.Release()

	ptr := hostcall.GetValidatorPower(in.Ptr())
	if ptr == 0 {
		return nil, fmt.Errorf("get validator power: host returned no result")
	}
	owned := abi.TakeOwnership(ptr)
	src := codec.NewSource(owned.Consume())
	powers, err := src.ReadU128s()
	if err != nil {
		return nil, fmt.Errorf("get validator power: %w", err)
	}
	if len(powers) != len(validators) {
		return nil, fmt.Errorf("get validator power: got %d values for %d validators", len(powers), len(validators))
	}
	return powers, nil
}

// TotalPower returns the total stake of the validator set.
func (a *ExternalAPI) TotalPower() entities.U128 {
	out := abi.AllocateRegion(entities.Int128Size)
	defer out.Release()
	hostcall.TotalPower(out.Ptr())
	raw := out.Bytes()
	if len(raw) != entities.Int128Size {
		Abort(fmt.Sprintf("host returned %d bytes of total power", len(raw)))
	}
	return entities.U128FromBytes(raw)
}

// Ret delivers the result of the invocation to the host.
func (a *ExternalAPI) Ret(result entities.ContractResult) {
	v := abi.BuildRegion(codec.EncodeContractResult(result))
	defer v.Release()
	hostcall.ReturnContract(v.Ptr())
}

// RetErr delivers err as an Err result.
func (a *ExternalAPI) RetErr(err error) {
	a.Ret(entities.ErrFrom(err))
}

// Debug sends a diagnostic line to the host.
func (a *ExternalAPI) Debug(message string) {
	Debug(message)
}

// Debug sends a diagnostic line to the host.
func Debug(message string) {
	v := abi.BuildRegion([]byte(message))
	defer v.Release()
	hostcall.DebugPrint(v.Ptr())
}
