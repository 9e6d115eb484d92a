// Package host runs compiled contracts on wazero.
//
// It registers the "env" import module from a hostfuncs.Registry, loads
// contract binaries with their ABI manifest and invokes exported entry
// points. Each invocation gets its own hostfuncs.Session; the Outcome
// reports the returned ContractResult, emitted events, debug output and
// aborts. It is a development host: storage, balances and validator
// powers come from the configured hostfuncs.Env and KVStore.
package host
