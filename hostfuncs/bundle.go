package hostfuncs

// Bundle is a pre-configured set of related imports.
// Bundles allow registering multiple imports at once.
type Bundle interface {
	Imports() []Import
}

// staticBundle implements Bundle with a fixed set of imports.
type staticBundle struct {
	imports []Import
}

func (b *staticBundle) Imports() []Import {
	return b.imports
}

// StorageBundle returns the storage imports: read_db, write_db, delete_db.
func StorageBundle() Bundle {
	return &staticBundle{
		imports: []Import{
			{Name: "read_db", Params: 3, Results: 1, Func: ReadDB},
			{Name: "write_db", Params: 2, Func: WriteDB},
			{Name: "delete_db", Params: 1, Func: DeleteDB},
		},
	}
}

// ContextBundle returns the imports that describe the invocation:
// get_input, get_creator, get_invoker, get_pre_caller, self_address,
// get_block_header.
func ContextBundle() Bundle {
	return &staticBundle{
		imports: []Import{
			{Name: "get_input", Results: 1, Func: GetInput},
			{Name: "get_creator", Params: 1, Func: GetCreator},
			{Name: "get_invoker", Params: 1, Func: GetInvoker},
			{Name: "get_pre_caller", Params: 1, Func: GetPreCaller},
			{Name: "self_address", Params: 1, Func: SelfAddress},
			{Name: "get_block_header", Params: 1, Func: GetBlockHeader},
		},
	}
}

// OutputBundle returns the imports a contract reports through:
// return_contract, panic_contract, debug_print, notify_contract.
func OutputBundle() Bundle {
	return &staticBundle{
		imports: []Import{
			{Name: "return_contract", Params: 1, Func: ReturnContract},
			{Name: "panic_contract", Params: 1, Func: PanicContract},
			{Name: "debug_print", Params: 1, Func: DebugPrint},
			{Name: "notify_contract", Params: 1, Func: NotifyContract},
		},
	}
}

// ChainBundle returns the imports that act on other accounts:
// send, call_contract, migrate_contract, destroy_contract.
func ChainBundle() Bundle {
	return &staticBundle{
		imports: []Import{
			{Name: "send", Params: 2, Results: 1, Func: Send},
			{Name: "call_contract", Params: 2, Results: 1, Func: CallContract},
			{Name: "migrate_contract", Params: 2, Results: 1, Func: MigrateContract},
			{Name: "destroy_contract", Func: DestroyContract},
		},
	}
}

// StakingBundle returns the validator imports: get_validator_power,
// total_power.
func StakingBundle() Bundle {
	return &staticBundle{
		imports: []Import{
			{Name: "get_validator_power", Params: 1, Results: 1, Func: GetValidatorPower},
			{Name: "total_power", Params: 1, Func: TotalPower},
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Imports() []Import {
	var result []Import
	for _, bundle := range b.bundles {
		result = append(result, bundle.Imports()...)
	}
	return result
}

// AllBundles returns a bundle containing every env import.
func AllBundles() Bundle {
	return &compositeBundle{
		bundles: []Bundle{
			StorageBundle(),
			ContextBundle(),
			OutputBundle(),
			ChainBundle(),
			StakingBundle(),
		},
	}
}
