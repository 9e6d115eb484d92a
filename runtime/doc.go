// Package runtime gives contract code typed access to the host: the
// invocation payload, prefixed key/value storage, value transfer, identity
// and chain queries, cross-contract calls, events and the result envelope.
//
// Every call is synchronous. Buffers cross the boundary through the Region
// protocol of internal/abi; memory-ownership violations and explicit aborts
// terminate the invocation and never return.
package runtime
