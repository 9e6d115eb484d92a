package entities

import (
	"encoding/hex"
	"errors"
	"strings"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
)

const (
	// AddressLength is the size of an address in bytes.
	AddressLength = 20

	// AddressTextLength is the size of the canonical text form: "0x" + 40 hex digits.
	AddressTextLength = 2 + 2*AddressLength

	addressPrefix = "0x"
)

// Sentinel causes for a malformed address. They are wrapped in a
// DecodeError of kind IrregularData.
var (
	ErrAddressLength = errors.New("address must be 42 characters")
	ErrAddressPrefix = errors.New("address must start with 0x")
	ErrAddressHex    = errors.New("address contains a non-hex character")
)

// Address is a 20-byte account identifier. Equality is byte-wise, so
// Address values can be compared with == and used as map keys.
type Address [AddressLength]byte

// ParseAddress parses the canonical text form. Upper-case hex digits are
// accepted on input; String always produces lower case.
func ParseAddress(s string) (Address, error) {
	var a Address
	if len(s) != AddressTextLength {
		return a, addressError(ErrAddressLength)
	}
	if !strings.HasPrefix(s, addressPrefix) {
		return a, addressError(ErrAddressPrefix)
	}
	if _, err := hex.Decode(a[:], []byte(s[len(addressPrefix):])); err != nil {
		return Address{}, addressError(ErrAddressHex)
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on malformed input.
// Intended for constants in tests and examples.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies a 20-byte binary address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, &cdkerrors.DecodeError{
			Kind: cdkerrors.UnexpectedEOF,
			What: "address",
			Want: AddressLength,
			Have: len(b),
		}
	}
	copy(a[:], b)
	return a, nil
}

func addressError(cause error) error {
	return &cdkerrors.DecodeError{Kind: cdkerrors.IrregularData, What: "address", Err: cause}
}

// String returns the canonical lower-case text form.
func (a Address) String() string {
	return addressPrefix + hex.EncodeToString(a[:])
}

// Bytes returns a copy of the binary form.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// IsZero reports whether all bytes are zero.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
