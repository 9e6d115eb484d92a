package safemath

import (
	"github.com/c123chain/cdk-go/domain/entities"
	"github.com/holiman/uint256"
)

// CheckedAddU128 returns a+b, or ok=false on overflow.
func CheckedAddU128(a, b entities.U128) (entities.U128, bool) {
	sum := new(uint256.Int).Add(a.Uint256(), b.Uint256())
	return entities.U128FromUint256(sum)
}

// CheckedSubU128 returns a-b, or ok=false when b > a.
func CheckedSubU128(a, b entities.U128) (entities.U128, bool) {
	x, y := a.Uint256(), b.Uint256()
	if x.Lt(y) {
		return entities.U128{}, false
	}
	return entities.U128FromUint256(new(uint256.Int).Sub(x, y))
}

// CheckedMulU128 returns a*b, or ok=false on overflow.
func CheckedMulU128(a, b entities.U128) (entities.U128, bool) {
	return entities.U128FromUint256(new(uint256.Int).Mul(a.Uint256(), b.Uint256()))
}

// CheckedDivU128 returns a/b, or ok=false when b is zero.
func CheckedDivU128(a, b entities.U128) (entities.U128, bool) {
	if b.IsZero() {
		return entities.U128{}, false
	}
	return entities.U128FromUint256(new(uint256.Int).Div(a.Uint256(), b.Uint256()))
}

// CheckedAddI128 returns a+b, or ok=false on overflow.
func CheckedAddI128(a, b entities.I128) (entities.I128, bool) {
	return entities.I128FromUint256(new(uint256.Int).Add(a.Uint256(), b.Uint256()))
}

// CheckedSubI128 returns a-b, or ok=false on overflow.
func CheckedSubI128(a, b entities.I128) (entities.I128, bool) {
	return entities.I128FromUint256(new(uint256.Int).Sub(a.Uint256(), b.Uint256()))
}

// CheckedMulI128 returns a*b, or ok=false on overflow. Sign-extended 128-bit
// operands cannot overflow the 256-bit product.
func CheckedMulI128(a, b entities.I128) (entities.I128, bool) {
	return entities.I128FromUint256(new(uint256.Int).Mul(a.Uint256(), b.Uint256()))
}

// CheckedDivI128 returns a/b truncated toward zero. ok is false for b == 0
// and for MinI128 / -1; divZero distinguishes the two.
func CheckedDivI128(a, b entities.I128) (quo entities.I128, ok bool, divZero bool) {
	if b.IsZero() {
		return entities.I128{}, false, true
	}
	if a == entities.MinI128 && b == entities.NewI128(-1) {
		return a, false, false
	}
	q, ok := entities.I128FromUint256(new(uint256.Int).SDiv(a.Uint256(), b.Uint256()))
	return q, ok, false
}

// AddU128 returns a+b and aborts with "add overflow" on overflow.
func AddU128(a, b entities.U128) entities.U128 {
	sum, ok := CheckedAddU128(a, b)
	if !ok {
		fail(MsgAddOverflow)
	}
	return sum
}

// SubU128 returns a-b and aborts with "sub overflow" when b > a.
func SubU128(a, b entities.U128) entities.U128 {
	diff, ok := CheckedSubU128(a, b)
	if !ok {
		fail(MsgSubOverflow)
	}
	return diff
}

// MulU128 returns a*b and aborts with "mul overflow" on overflow.
func MulU128(a, b entities.U128) entities.U128 {
	prod, ok := CheckedMulU128(a, b)
	if !ok {
		fail(MsgMulOverflow)
	}
	return prod
}

// DivU128 returns a/b and aborts with "divide by zero" when b is zero.
func DivU128(a, b entities.U128) entities.U128 {
	quo, ok := CheckedDivU128(a, b)
	if !ok {
		fail(MsgDivideByZero)
	}
	return quo
}

// AddI128 returns a+b and aborts with "add overflow" on overflow.
func AddI128(a, b entities.I128) entities.I128 {
	sum, ok := CheckedAddI128(a, b)
	if !ok {
		fail(MsgAddOverflow)
	}
	return sum
}

// SubI128 returns a-b and aborts with "sub overflow" on overflow.
func SubI128(a, b entities.I128) entities.I128 {
	diff, ok := CheckedSubI128(a, b)
	if !ok {
		fail(MsgSubOverflow)
	}
	return diff
}

// MulI128 returns a*b and aborts with "mul overflow" on overflow.
func MulI128(a, b entities.I128) entities.I128 {
	prod, ok := CheckedMulI128(a, b)
	if !ok {
		fail(MsgMulOverflow)
	}
	return prod
}

// DivI128 returns a/b and aborts with "divide by zero" or "div overflow".
func DivI128(a, b entities.I128) entities.I128 {
	quo, ok, divZero := CheckedDivI128(a, b)
	switch {
	case divZero:
		fail(MsgDivideByZero)
	case !ok:
		fail(MsgDivOverflow)
	}
	return quo
}
