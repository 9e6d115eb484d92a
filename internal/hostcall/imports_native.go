//go:build !wasip1

package hostcall

import "sync"

var current struct {
	sync.RWMutex
	h Handler
}

// SetHandler installs h as the host for native builds and returns a function
// restoring the previous one. Only one host can be active per process.
func SetHandler(h Handler) (restore func()) {
	current.Lock()
	prev := current.h
	current.h = h
	current.Unlock()
	return func() {
		current.Lock()
		current.h = prev
		current.Unlock()
	}
}

func host() Handler {
	current.RLock()
	h := current.h
	current.RUnlock()
	if h == nil {
		panic("hostcall: no host installed; native builds need hostcall.SetHandler")
	}
	return h
}

// hostOrNil is used by the diagnostic imports, which are dropped when no
// host is installed.
func hostOrNil() Handler {
	current.RLock()
	defer current.RUnlock()
	return current.h
}

func GetInput() uint32                       { return host().GetInput() }
func ReadDB(key, value, offset uint32) int32 { return host().ReadDB(key, value, offset) }
func WriteDB(key, value uint32)              { host().WriteDB(key, value) }
func DeleteDB(key uint32)                    { host().DeleteDB(key) }
func Send(to, amount uint32) int32           { return host().Send(to, amount) }
func GetCreator(out uint32)                  { host().GetCreator(out) }
func GetInvoker(out uint32)                  { host().GetInvoker(out) }
func GetPreCaller(out uint32)                { host().GetPreCaller(out) }
func SelfAddress(out uint32)                 { host().SelfAddress(out) }
func GetBlockHeader(out uint32)              { host().GetBlockHeader(out) }
func CallContract(addr, input uint32) uint32 { return host().CallContract(addr, input) }
func NotifyContract(event uint32)            { host().NotifyContract(event) }
func ReturnContract(result uint32)           { host().ReturnContract(result) }
func MigrateContract(args, out uint32) int32 { return host().MigrateContract(args, out) }
func DestroyContract()                       { host().DestroyContract() }
func GetValidatorPower(v uint32) uint32      { return host().GetValidatorPower(v) }
func TotalPower(out uint32)                  { host().TotalPower(out) }

// PanicContract reports an abort. Without a host the report is dropped; the
// caller raises the fault itself.
func PanicContract(msg uint32) {
	if h := hostOrNil(); h != nil {
		h.PanicContract(msg)
	}
}

// DebugPrint forwards a diagnostic line, or drops it without a host.
func DebugPrint(msg uint32) {
	if h := hostOrNil(); h != nil {
		h.DebugPrint(msg)
	}
}
