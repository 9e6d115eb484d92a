package entities

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/holiman/uint256"
)

// Int128Size is the wire size of U128 and I128: 16 bytes, little-endian.
const Int128Size = 16

// U128 is an unsigned 128-bit integer held as two 64-bit limbs.
type U128 struct {
	Lo uint64
	Hi uint64
}

// I128 is a signed 128-bit two's complement integer. Hi carries the sign.
type I128 struct {
	Lo uint64
	Hi int64
}

var (
	MaxU128 = U128{Lo: math.MaxUint64, Hi: math.MaxUint64}
	MaxI128 = I128{Lo: math.MaxUint64, Hi: math.MaxInt64}
	MinI128 = I128{Lo: 0, Hi: math.MinInt64}
)

// NewU128 widens a uint64.
func NewU128(v uint64) U128 {
	return U128{Lo: v}
}

// NewI128 sign-extends an int64.
func NewI128(v int64) I128 {
	hi := int64(0)
	if v < 0 {
		hi = -1
	}
	return I128{Lo: uint64(v), Hi: hi}
}

// U128FromBytes reads 16 little-endian bytes. b must hold at least 16 bytes.
func U128FromBytes(b []byte) U128 {
	return U128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// I128FromBytes reads 16 little-endian bytes. b must hold at least 16 bytes.
func I128FromBytes(b []byte) I128 {
	u := U128FromBytes(b)
	return I128{Lo: u.Lo, Hi: int64(u.Hi)}
}

// Bytes returns the 16-byte little-endian form.
func (u U128) Bytes() [Int128Size]byte {
	var b [Int128Size]byte
	binary.LittleEndian.PutUint64(b[0:8], u.Lo)
	binary.LittleEndian.PutUint64(b[8:16], u.Hi)
	return b
}

// Bytes returns the 16-byte little-endian two's complement form.
func (i I128) Bytes() [Int128Size]byte {
	return U128{Lo: i.Lo, Hi: uint64(i.Hi)}.Bytes()
}

// IsZero reports whether u == 0.
func (u U128) IsZero() bool { return u.Lo == 0 && u.Hi == 0 }

// IsZero reports whether i == 0.
func (i I128) IsZero() bool { return i.Lo == 0 && i.Hi == 0 }

// Sign returns -1, 0 or 1.
func (i I128) Sign() int {
	switch {
	case i.Hi < 0:
		return -1
	case i.IsZero():
		return 0
	default:
		return 1
	}
}

// Cmp compares u and v and returns -1, 0 or 1.
func (u U128) Cmp(v U128) int {
	return u.Uint256().Cmp(v.Uint256())
}

// Cmp compares i and j and returns -1, 0 or 1.
func (i I128) Cmp(j I128) int {
	a, b := i.Uint256(), j.Uint256()
	switch {
	case a.Eq(b):
		return 0
	case a.Slt(b):
		return -1
	default:
		return 1
	}
}

// Uint256 widens u into a 256-bit integer.
func (u U128) Uint256() *uint256.Int {
	return &uint256.Int{u.Lo, u.Hi, 0, 0}
}

// Uint256 sign-extends i into a 256-bit two's complement integer.
func (i I128) Uint256() *uint256.Int {
	ext := uint64(0)
	if i.Hi < 0 {
		ext = math.MaxUint64
	}
	return &uint256.Int{i.Lo, uint64(i.Hi), ext, ext}
}

// U128FromUint256 narrows z. ok is false when z does not fit in 128 bits.
func U128FromUint256(z *uint256.Int) (U128, bool) {
	return U128{Lo: z[0], Hi: z[1]}, z[2] == 0 && z[3] == 0
}

// I128FromUint256 narrows a 256-bit two's complement value. ok is false when
// z is outside the I128 range.
func I128FromUint256(z *uint256.Int) (I128, bool) {
	ext := uint64(0)
	if int64(z[1]) < 0 {
		ext = math.MaxUint64
	}
	return I128{Lo: z[0], Hi: int64(z[1])}, z[2] == ext && z[3] == ext
}

// String returns the decimal form.
func (u U128) String() string {
	return u.Uint256().Dec()
}

// String returns the decimal form with a leading '-' when negative.
func (i I128) String() string {
	if i.Hi >= 0 {
		return i.Uint256().Dec()
	}
	return "-" + new(uint256.Int).Neg(i.Uint256()).Dec()
}

// ParseU128 parses a decimal string.
func ParseU128(s string) (U128, error) {
	z, err := uint256.FromDecimal(s)
	if err != nil {
		return U128{}, fmt.Errorf("parse u128 %q: %w", s, err)
	}
	u, ok := U128FromUint256(z)
	if !ok {
		return U128{}, fmt.Errorf("parse u128 %q: value out of range", s)
	}
	return u, nil
}

// ParseI128 parses a decimal string with an optional leading sign.
func ParseI128(s string) (I128, error) {
	digits, neg := strings.CutPrefix(s, "-")
	if !neg {
		digits = strings.TrimPrefix(s, "+")
	}
	z, err := uint256.FromDecimal(digits)
	if err != nil {
		return I128{}, fmt.Errorf("parse i128 %q: %w", s, err)
	}
	if neg {
		z.Neg(z)
	}
	i, ok := I128FromUint256(z)
	if !ok || (neg && i.Hi >= 0 && !i.IsZero()) || (!neg && i.Hi < 0) {
		return I128{}, fmt.Errorf("parse i128 %q: value out of range", s)
	}
	return i, nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (u U128) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *U128) UnmarshalText(text []byte) error {
	v, err := ParseU128(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (i I128) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *I128) UnmarshalText(text []byte) error {
	v, err := ParseI128(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
