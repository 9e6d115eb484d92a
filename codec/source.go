package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
)

// Source reads typed values from an immutable buffer.
type Source struct {
	buf []byte
	pos int
}

// NewSource wraps b. The Source never modifies b.
func NewSource(b []byte) *Source {
	return &Source{buf: b}
}

// Pos returns the cursor position.
func (s *Source) Pos() int { return s.pos }

// Remaining returns the number of unread bytes.
func (s *Source) Remaining() int { return len(s.buf) - s.pos }

// next returns the next n bytes and advances the cursor, or fails with
// UnexpectedEOF leaving the cursor unchanged.
func (s *Source) next(n int, what string) ([]byte, error) {
	if n < 0 || n > s.Remaining() {
		return nil, &cdkerrors.DecodeError{
			Kind: cdkerrors.UnexpectedEOF,
			What: what,
			Pos:  s.pos,
			Want: n,
			Have: s.Remaining(),
		}
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *Source) ReadU8() (byte, error) {
	b, err := s.next(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool accepts only 0 and 1.
func (s *Source) ReadBool() (bool, error) {
	pos := s.pos
	b, err := s.next(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &cdkerrors.DecodeError{
			Kind: cdkerrors.IrregularData,
			What: "bool",
			Pos:  pos,
			Err:  fmt.Errorf("invalid bool byte 0x%02x", b[0]),
		}
	}
}

func (s *Source) ReadU32() (uint32, error) {
	b, err := s.next(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *Source) ReadI32() (int32, error) {
	b, err := s.next(4, "i32")
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (s *Source) ReadU64() (uint64, error) {
	b, err := s.next(8, "u64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (s *Source) ReadI64() (int64, error) {
	b, err := s.next(8, "i64")
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (s *Source) ReadU128() (entities.U128, error) {
	b, err := s.next(entities.Int128Size, "u128")
	if err != nil {
		return entities.U128{}, err
	}
	return entities.U128FromBytes(b), nil
}

func (s *Source) ReadI128() (entities.I128, error) {
	b, err := s.next(entities.Int128Size, "i128")
	if err != nil {
		return entities.I128{}, err
	}
	return entities.I128FromBytes(b), nil
}

// ReadRaw returns the next n bytes without a length prefix. The returned
// slice aliases the Source's buffer.
func (s *Source) ReadRaw(n int) ([]byte, error) {
	return s.next(n, "raw bytes")
}

// ReadBytes reads a u32 length prefix and that many bytes. The returned
// slice aliases the Source's buffer.
func (s *Source) ReadBytes() ([]byte, error) {
	n, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	return s.next(int(n), "bytes")
}

// ReadString reads a length-prefixed UTF-8 string.
func (s *Source) ReadString() (string, error) {
	n, err := s.ReadU32()
	if err != nil {
		return "", err
	}
	pos := s.pos
	b, err := s.next(int(n), "string")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &cdkerrors.DecodeError{Kind: cdkerrors.InvalidUtf8, What: "string", Pos: pos}
	}
	return string(b), nil
}

// ReadAddress reads a 20-byte binary address.
func (s *Source) ReadAddress() (entities.Address, error) {
	b, err := s.next(entities.AddressLength, "address")
	if err != nil {
		return entities.Address{}, err
	}
	var a entities.Address
	copy(a[:], b)
	return a, nil
}

// Finish fails with IrregularData when unread bytes remain.
func (s *Source) Finish(what string) error {
	if s.Remaining() == 0 {
		return nil
	}
	return &cdkerrors.DecodeError{
		Kind: cdkerrors.IrregularData,
		What: what,
		Pos:  s.pos,
		Err:  fmt.Errorf("%d trailing bytes", s.Remaining()),
	}
}
