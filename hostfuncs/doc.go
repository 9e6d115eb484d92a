// Package hostfuncs provides pure Go implementations of the contract imports
// (wasm module "env"). The implementations have NO WASM runtime dependencies:
// they see guest memory only through the Memory interface, so the same code
// backs the wazero host in package host and the native test harness in
// testing/contracttest.
//
// Every import follows the calling convention of wazero's GoModuleFunc:
// arguments arrive in the stack slice and results are written back to its
// first slots.
package hostfuncs
