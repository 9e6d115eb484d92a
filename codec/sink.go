package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
)

// Sink is an append-only output buffer.
type Sink struct {
	buf []byte
}

// NewSink creates a Sink with the given initial capacity.
func NewSink(capacity int) *Sink {
	return &Sink{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes. The slice aliases the Sink's buffer.
func (s *Sink) Bytes() []byte { return s.buf }

// Len returns the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// WriteU8 appends one byte.
func (s *Sink) WriteU8(b byte) {
	s.buf = append(s.buf, b)
}

// WriteBool appends 1 for true and 0 for false.
func (s *Sink) WriteBool(v bool) {
	if v {
		s.WriteU8(1)
		return
	}
	s.WriteU8(0)
}

func (s *Sink) WriteU32(v uint32) {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, v)
}

func (s *Sink) WriteI32(v int32) {
	s.WriteU32(uint32(v))
}

func (s *Sink) WriteU64(v uint64) {
	s.buf = binary.LittleEndian.AppendUint64(s.buf, v)
}

func (s *Sink) WriteI64(v int64) {
	s.WriteU64(uint64(v))
}

// WriteU128 appends the low limb then the high limb.
func (s *Sink) WriteU128(v entities.U128) {
	s.WriteU64(v.Lo)
	s.WriteU64(v.Hi)
}

// WriteI128 appends the two's complement form.
func (s *Sink) WriteI128(v entities.I128) {
	s.WriteU64(v.Lo)
	s.WriteU64(uint64(v.Hi))
}

// WriteRaw appends b without a length prefix.
func (s *Sink) WriteRaw(b []byte) {
	s.buf = append(s.buf, b...)
}

// WriteBytes appends a u32 length prefix followed by b. Lengths that do not
// fit in a u32 cannot be represented and raise an Oversize fault.
func (s *Sink) WriteBytes(b []byte) {
	s.WriteU32(checkedLen(len(b)))
	s.WriteRaw(b)
}

// WriteString appends the UTF-8 bytes of v with a length prefix.
func (s *Sink) WriteString(v string) {
	s.WriteU32(checkedLen(len(v)))
	s.buf = append(s.buf, v...)
}

// WriteAddress appends the 20-byte binary address.
func (s *Sink) WriteAddress(a entities.Address) {
	s.WriteRaw(a[:])
}

func checkedLen(n int) uint32 {
	if uint64(n) > math.MaxUint32 {
		panic(&cdkerrors.Fault{
			Kind:    cdkerrors.Oversize,
			Message: fmt.Sprintf("field of %d bytes exceeds u32 length prefix", n),
		})
	}
	return uint32(n)
}
