package safemath

import (
	"testing"

	"github.com/c123chain/cdk-go/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestU128(t *testing.T) {
	one := entities.NewU128(1)
	top := entities.MaxU128

	assert.Equal(t, entities.U128{Hi: 1}, AddU128(entities.NewU128(^uint64(0)), one))
	assert.Equal(t, MsgAddOverflow, abortMessage(t, func() { AddU128(top, one) }))

	assert.Equal(t, entities.NewU128(^uint64(0)), SubU128(entities.U128{Hi: 1}, one))
	assert.Equal(t, MsgSubOverflow, abortMessage(t, func() { SubU128(entities.U128{}, one) }))

	assert.Equal(t, entities.U128{Hi: 1}, MulU128(entities.NewU128(1<<32), entities.NewU128(1<<32)))
	assert.Equal(t, MsgMulOverflow, abortMessage(t, func() { MulU128(top, entities.NewU128(2)) }))

	assert.Equal(t, entities.NewU128(5), DivU128(entities.NewU128(10), entities.NewU128(2)))
	assert.Equal(t, MsgDivideByZero, abortMessage(t, func() { DivU128(top, entities.U128{}) }))
}

func TestI128(t *testing.T) {
	minusOne := entities.NewI128(-1)

	assert.Equal(t, entities.NewI128(-3), AddI128(entities.NewI128(-1), entities.NewI128(-2)))
	assert.Equal(t, MsgAddOverflow, abortMessage(t, func() { AddI128(entities.MaxI128, entities.NewI128(1)) }))

	assert.Equal(t, entities.NewI128(5), SubI128(entities.NewI128(2), entities.NewI128(-3)))
	assert.Equal(t, MsgSubOverflow, abortMessage(t, func() { SubI128(entities.MinI128, entities.NewI128(1)) }))

	assert.Equal(t, entities.NewI128(-6), MulI128(entities.NewI128(2), entities.NewI128(-3)))
	assert.Equal(t, MsgMulOverflow, abortMessage(t, func() { MulI128(entities.MinI128, minusOne) }))

	assert.Equal(t, entities.NewI128(-3), DivI128(entities.NewI128(7), entities.NewI128(-2)))
	assert.Equal(t, MsgDivideByZero, abortMessage(t, func() { DivI128(entities.NewI128(7), entities.I128{}) }))
	assert.Equal(t, MsgDivOverflow, abortMessage(t, func() { DivI128(entities.MinI128, minusOne) }))
}

func TestCheckedI128_Boundaries(t *testing.T) {
	v, ok := CheckedAddI128(entities.MinI128, entities.MaxI128)
	assert.True(t, ok)
	assert.Equal(t, entities.NewI128(-1), v)

	_, ok = CheckedMulI128(entities.MaxI128, entities.NewI128(2))
	assert.False(t, ok)

	q, ok, divZero := CheckedDivI128(entities.MinI128, entities.NewI128(1))
	assert.True(t, ok)
	assert.False(t, divZero)
	assert.Equal(t, entities.MinI128, q)
}
