//go:build wasip1

package hostcall

//go:wasmimport env get_input
func GetInput() uint32

//go:wasmimport env read_db
func ReadDB(key, value, offset uint32) int32

//go:wasmimport env write_db
func WriteDB(key, value uint32)

//go:wasmimport env delete_db
func DeleteDB(key uint32)

//go:wasmimport env send
func Send(to, amount uint32) int32

//go:wasmimport env get_creator
func GetCreator(out uint32)

//go:wasmimport env get_invoker
func GetInvoker(out uint32)

//go:wasmimport env get_pre_caller
func GetPreCaller(out uint32)

//go:wasmimport env self_address
func SelfAddress(out uint32)

//go:wasmimport env get_block_header
func GetBlockHeader(out uint32)

//go:wasmimport env call_contract
func CallContract(addr, input uint32) uint32

//go:wasmimport env notify_contract
func NotifyContract(event uint32)

//go:wasmimport env return_contract
func ReturnContract(result uint32)

//go:wasmimport env panic_contract
func PanicContract(msg uint32)

//go:wasmimport env debug_print
func DebugPrint(msg uint32)

//go:wasmimport env migrate_contract
func MigrateContract(args, out uint32) int32

//go:wasmimport env destroy_contract
func DestroyContract()

//go:wasmimport env get_validator_power
func GetValidatorPower(validators uint32) uint32

//go:wasmimport env total_power
func TotalPower(out uint32)
