package hostfuncs

import (
	"context"
	"fmt"

	"github.com/c123chain/cdk-go/domain/entities"
)

// DefaultMaxRegionSize caps the number of bytes the host will read out of a
// single guest region (16 MiB).
const DefaultMaxRegionSize = 16 * 1024 * 1024

// Memory is the host's view of a guest's linear memory.
type Memory interface {
	// Read returns a copy of n bytes at ptr. ok is false when the range is
	// outside guest memory.
	Read(ptr, n uint32) (data []byte, ok bool)

	// Write copies data to ptr. It reports false when the range is outside
	// guest memory.
	Write(ptr uint32, data []byte) bool

	// Allocate reserves size bytes through the guest's exported allocator.
	Allocate(ctx context.Context, size uint32) (uint32, error)
}

// ReadDescriptor loads and validates the Region descriptor at ptr.
func ReadDescriptor(mem Memory, ptr uint32) (entities.Region, error) {
	if ptr == 0 {
		return entities.Region{}, fmt.Errorf("region descriptor: %w", entities.ErrRegionZeroOffset)
	}
	raw, ok := mem.Read(ptr, entities.RegionSize)
	if !ok {
		return entities.Region{}, fmt.Errorf("region descriptor at %#x: out of memory bounds", ptr)
	}
	r, err := entities.RegionFromBytes(raw)
	if err != nil {
		return entities.Region{}, err
	}
	if err := r.Validate(); err != nil {
		return entities.Region{}, fmt.Errorf("region descriptor at %#x: %w", ptr, err)
	}
	return r, nil
}

// ReadRegion returns a copy of the bytes described by the descriptor at ptr.
func ReadRegion(mem Memory, ptr uint32) ([]byte, error) {
	r, err := ReadDescriptor(mem, ptr)
	if err != nil {
		return nil, err
	}
	if r.Length > DefaultMaxRegionSize {
		return nil, fmt.Errorf("region at %#x: length %d exceeds limit %d", ptr, r.Length, DefaultMaxRegionSize)
	}
	data, ok := mem.Read(r.Offset, r.Length)
	if !ok {
		return nil, fmt.Errorf("region at %#x: data [%#x, +%d) out of memory bounds", ptr, r.Offset, r.Length)
	}
	return data, nil
}

// FillRegion copies as much of data as fits into the guest-allocated region
// at ptr and records the number of bytes written in its Length field.
func FillRegion(mem Memory, ptr uint32, data []byte) (uint32, error) {
	r, err := ReadDescriptor(mem, ptr)
	if err != nil {
		return 0, err
	}
	n := uint32(len(data))
	if n > r.Capacity {
		n = r.Capacity
	}
	if !mem.Write(r.Offset, data[:n]) {
		return 0, fmt.Errorf("region at %#x: data [%#x, +%d) out of memory bounds", ptr, r.Offset, n)
	}
	r.Length = n
	desc := r.Bytes()
	if !mem.Write(ptr, desc[:]) {
		return 0, fmt.Errorf("region descriptor at %#x: out of memory bounds", ptr)
	}
	return n, nil
}

// FillRegionExact is FillRegion for fixed-size outputs: the region must be
// large enough for all of data.
func FillRegionExact(mem Memory, ptr uint32, data []byte) error {
	r, err := ReadDescriptor(mem, ptr)
	if err != nil {
		return err
	}
	if r.Capacity < uint32(len(data)) {
		return fmt.Errorf("region at %#x: capacity %d, need %d", ptr, r.Capacity, len(data))
	}
	_, err = FillRegion(mem, ptr, data)
	return err
}

// NewRegion hands data to the guest. Both the data buffer and the descriptor
// are obtained from the guest allocator, so the guest owns them and releases
// them when it consumes the returned descriptor address.
func NewRegion(ctx context.Context, mem Memory, data []byte) (uint32, error) {
	size := uint32(len(data))
	if uint64(len(data)) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("new region: %d bytes exceed u32 length", len(data))
	}
	// A zero-byte allocation has no stable address.
	offset, err := mem.Allocate(ctx, max(size, 1))
	if err != nil {
		return 0, fmt.Errorf("new region: allocate data: %w", err)
	}
	if offset == 0 {
		return 0, fmt.Errorf("new region: guest allocator returned null")
	}
	if !mem.Write(offset, data) {
		return 0, fmt.Errorf("new region: data [%#x, +%d) out of memory bounds", offset, size)
	}

	ptr, err := mem.Allocate(ctx, entities.RegionSize)
	if err != nil {
		return 0, fmt.Errorf("new region: allocate descriptor: %w", err)
	}
	if ptr == 0 {
		return 0, fmt.Errorf("new region: guest allocator returned null")
	}
	desc := entities.Region{Offset: offset, Capacity: max(size, 1), Length: size}.Bytes()
	if !mem.Write(ptr, desc[:]) {
		return 0, fmt.Errorf("new region: descriptor at %#x out of memory bounds", ptr)
	}
	return ptr, nil
}
