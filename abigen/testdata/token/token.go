// Package token is a generator fixture.
package token

import (
	cdk "github.com/c123chain/cdk-go"
	"github.com/c123chain/cdk-go/domain/entities"
	"github.com/c123chain/cdk-go/runtime"
)

var balances = map[string]cdk.U128{}

// Balance returns the balance of owner.
//
//cdk:export
func Balance(owner []byte) entities.ContractResult {
	b := balances[string(owner)].Bytes()
	return entities.Ok(b[:])
}

//cdk:export transfer
func Transfer(to []byte, amount cdk.U128, memo string) entities.ContractResult {
	deps := runtime.MakeDependencies()
	deps.API.Debug(memo)
	balances[string(to)] = amount
	return entities.Ok(nil)
}

//cdk:export
func Reset() {
	clear(balances)
}

// helper is not exported.
func helper() {}
