// Package safemath provides integer arithmetic that aborts the invocation
// on overflow or division by zero instead of wrapping.
//
// The aborting functions report through the host and do not return on
// failure. The Checked variants return ok=false instead.
package safemath

import (
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/internal/abi"
)

// fail aborts the invocation with an arithmetic fault carrying msg.
func fail(msg string) {
	abi.Fatal(&cdkerrors.Fault{Kind: cdkerrors.Arithmetic, Message: msg})
}

// Abort messages.
const (
	MsgAddOverflow  = "add overflow"
	MsgSubOverflow  = "sub overflow"
	MsgMulOverflow  = "mul overflow"
	MsgDivideByZero = "divide by zero"
	MsgDivOverflow  = "div overflow"
)

// Signed is the set of signed integer types up to 64 bits.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Unsigned is the set of unsigned integer types up to 64 bits.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Integer is any fixed-width integer type.
type Integer interface {
	Signed | Unsigned
}

func isSigned[T Integer]() bool {
	var zero T
	return zero-1 < 0
}

// CheckedAdd returns a+b, or ok=false on overflow.
func CheckedAdd[T Integer](a, b T) (T, bool) {
	sum := a + b
	if isSigned[T]() {
		// Overflow iff both operands share a sign the result does not.
		return sum, !((a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0))
	}
	return sum, sum >= a
}

// CheckedSub returns a-b, or ok=false on overflow.
func CheckedSub[T Integer](a, b T) (T, bool) {
	diff := a - b
	if isSigned[T]() {
		return diff, !((a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0))
	}
	return diff, a >= b
}

// CheckedMul returns a*b, or ok=false on overflow.
func CheckedMul[T Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if isSigned[T]() {
		// -1 * min wraps to min; the division check below misses it.
		minusOne, lowest := ^T(0), minOf[T]()
		if (a == minusOne && b == lowest) || (b == minusOne && a == lowest) {
			return prod, false
		}
	}
	if prod/b != a {
		return prod, false
	}
	return prod, true
}

// CheckedDiv returns a/b. ok is false for b == 0 and for min/-1 on signed
// types. divZero distinguishes the two failures.
func CheckedDiv[T Integer](a, b T) (quo T, ok bool, divZero bool) {
	if b == 0 {
		return 0, false, true
	}
	if isSigned[T]() && b == ^T(0) && a == minOf[T]() {
		return a, false, false
	}
	return a / b, true, false
}

// minOf returns the minimum value of a signed type, and 0 for unsigned ones.
func minOf[T Integer]() T {
	if !isSigned[T]() {
		return 0
	}
	var v T = 1
	for v<<1 != 0 {
		v <<= 1
	}
	return v
}

// Add returns a+b and aborts with "add overflow" on overflow.
func Add[T Integer](a, b T) T {
	sum, ok := CheckedAdd(a, b)
	if !ok {
		fail(MsgAddOverflow)
	}
	return sum
}

// Sub returns a-b and aborts with "sub overflow" on overflow.
func Sub[T Integer](a, b T) T {
	diff, ok := CheckedSub(a, b)
	if !ok {
		fail(MsgSubOverflow)
	}
	return diff
}

// Mul returns a*b and aborts with "mul overflow" on overflow.
func Mul[T Integer](a, b T) T {
	prod, ok := CheckedMul(a, b)
	if !ok {
		fail(MsgMulOverflow)
	}
	return prod
}

// Div returns a/b and aborts with "divide by zero" or "div overflow".
func Div[T Integer](a, b T) T {
	quo, ok, divZero := CheckedDiv(a, b)
	switch {
	case divZero:
		fail(MsgDivideByZero)
	case !ok:
		fail(MsgDivOverflow)
	}
	return quo
}
