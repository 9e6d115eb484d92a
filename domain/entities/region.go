package entities

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// RegionSize is the wire size of a Region descriptor: three little-endian u32.
const RegionSize = 12

var (
	ErrRegionZeroOffset      = errors.New("region has zero offset")
	ErrRegionLength          = errors.New("region length exceeds capacity")
	ErrRegionOutOfBounds     = errors.New("region end exceeds address space")
	ErrRegionShortDescriptor = errors.New("region descriptor shorter than 12 bytes")
)

// Region describes a byte buffer handed across the boundary. Offset is the
// address of the first byte, Capacity the size of the allocation and Length
// the number of bytes in use.
type Region struct {
	Offset   uint32 `json:"offset"`
	Capacity uint32 `json:"capacity"`
	Length   uint32 `json:"length"`
}

// Validate checks the plausibility rules every descriptor must satisfy.
// A fully zero descriptor (empty allocation at address 0) is rejected as
// well, since address 0 is never handed out.
func (r Region) Validate() error {
	if r.Offset == 0 {
		return ErrRegionZeroOffset
	}
	if r.Length > r.Capacity {
		return fmt.Errorf("%w: length %d, capacity %d", ErrRegionLength, r.Length, r.Capacity)
	}
	if uint64(r.Offset)+uint64(r.Capacity) > math.MaxUint32 {
		return fmt.Errorf("%w: offset %d, capacity %d", ErrRegionOutOfBounds, r.Offset, r.Capacity)
	}
	return nil
}

// Bytes returns the 12-byte descriptor.
func (r Region) Bytes() [RegionSize]byte {
	var b [RegionSize]byte
	r.Put(b[:])
	return b
}

// Put writes the descriptor into b, which must hold at least 12 bytes.
func (r Region) Put(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], r.Offset)
	binary.LittleEndian.PutUint32(b[4:8], r.Capacity)
	binary.LittleEndian.PutUint32(b[8:12], r.Length)
}

// RegionFromBytes decodes a 12-byte descriptor. It does not validate.
func RegionFromBytes(b []byte) (Region, error) {
	if len(b) < RegionSize {
		return Region{}, ErrRegionShortDescriptor
	}
	return Region{
		Offset:   binary.LittleEndian.Uint32(b[0:4]),
		Capacity: binary.LittleEndian.Uint32(b[4:8]),
		Length:   binary.LittleEndian.Uint32(b[8:12]),
	}, nil
}
