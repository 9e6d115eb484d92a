// Package hostcall declares the functions a contract imports from the host
// (wasm module "env").
//
// Every byte argument is passed as the address of a Region descriptor in
// guest memory. Functions returning u32 hand back the address of a
// host-created descriptor that the guest must consume exactly once, or 0.
//
// Under GOOS=wasip1 the functions are wasm imports. In native builds they
// dispatch to a Handler installed with SetHandler, which lets contracts run
// in ordinary Go tests.
package hostcall

// Handler is the native stand-in for the host. Its methods mirror the
// imports one to one.
type Handler interface {
	GetInput() uint32
	ReadDB(key, value, offset uint32) int32
	WriteDB(key, value uint32)
	DeleteDB(key uint32)
	Send(to, amount uint32) int32
	GetCreator(out uint32)
	GetInvoker(out uint32)
	GetPreCaller(out uint32)
	SelfAddress(out uint32)
	GetBlockHeader(out uint32)
	CallContract(addr, input uint32) uint32
	NotifyContract(event uint32)
	ReturnContract(result uint32)
	PanicContract(msg uint32)
	DebugPrint(msg uint32)
	MigrateContract(args, out uint32) int32
	DestroyContract()
	GetValidatorPower(validators uint32) uint32
	TotalPower(out uint32)
}

// ReadDBAbsent is returned by ReadDB when the key does not exist.
const ReadDBAbsent int32 = -1
