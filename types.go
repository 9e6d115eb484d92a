// Package cdk is the entry point for contract authors.
//
// It re-exports the value types contract functions take and return, so a
// contract can import a single package:
//
//	import cdk "github.com/c123chain/cdk-go"
//
//	//cdk:export
//	func Transfer(to []byte, amount cdk.U128) cdk.ContractResult {
//		deps := cdk.MakeDependencies()
//		...
//	}
//
// Storage and host calls live in the runtime package, wire encoding in
// codec and checked arithmetic in safemath.
package cdk

import (
	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/runtime"
)

// Version is the version of the contract development kit.
const Version = "0.4.0"

type (
	Address        = entities.Address
	U128           = entities.U128
	I128           = entities.I128
	ContractResult = entities.ContractResult
	Event          = entities.Event
	BlockHeader    = entities.BlockHeader
	ContractMeta   = entities.ContractMeta
	ContractError  = cdkerrors.ContractError
	Dependencies   = runtime.Dependencies
)

// Ok creates a successful result.
func Ok(data []byte) ContractResult { return entities.Ok(data) }

// Err creates a failed result with the given message.
func Err(message string) ContractResult { return entities.Err(message) }

// ErrFrom creates a failed result from an error value.
func ErrFrom(err error) ContractResult { return entities.ErrFrom(err) }

// NewU128 returns v as a U128.
func NewU128(v uint64) U128 { return entities.NewU128(v) }

// NewI128 returns v as an I128.
func NewI128(v int64) I128 { return entities.NewI128(v) }

// NewEvent starts an event of the given type.
func NewEvent(eventType string) *Event { return entities.NewEvent(eventType) }

// ParseAddress parses the 42-character text form of an address.
func ParseAddress(s string) (Address, error) { return entities.ParseAddress(s) }

// NewContractError creates a business-level error.
func NewContractError(format string, args ...any) *ContractError {
	return cdkerrors.NewContractError(format, args...)
}

// MakeDependencies builds the storage and host API of one invocation.
func MakeDependencies(opts ...runtime.Option) Dependencies {
	return runtime.MakeDependencies(opts...)
}
