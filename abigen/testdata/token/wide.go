package token

import "github.com/c123chain/cdk-go/domain/entities"

//cdk:export
func Wide(a bool, b uint32, c int32, d uint64, e int64, f entities.U128, g entities.I128, h string, i []byte, j, k, l uint32, m uint64) entities.ContractResult {
	return entities.Ok(nil)
}
