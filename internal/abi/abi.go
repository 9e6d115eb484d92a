// Package abi manages the memory shared between a contract and its host and
// implements the Region ownership protocol on top of it.
//
// Every buffer handed out by Allocate is pinned in a tracking table until it
// is deallocated or consumed. Descriptors produced by the host are consumed
// through TakeOwnership/Owned.Consume, which detects null, unknown and
// already-consumed descriptors and reports them as fatal faults.
package abi

import (
	"fmt"
	"sync"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
)

// DefaultMaxTotalAllocations is the default ceiling on pinned memory.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// DefaultMaxConsumedRecords is the default number of consumed descriptors
// remembered for double-consume detection. Older records are evicted first.
const DefaultMaxConsumedRecords = 4096

type config struct {
	maxTotalAllocations int
	maxConsumedRecords  int
}

// Option configures the memory manager.
type Option func(*config)

// WithMaxTotalAllocations sets the ceiling on pinned memory in bytes.
// Non-positive values restore the default.
func WithMaxTotalAllocations(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxTotalAllocations
		}
		c.maxTotalAllocations = n
	}
}

// WithMaxConsumedRecords bounds how many consumed descriptors are remembered.
// Non-positive values restore the default.
func WithMaxConsumedRecords(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultMaxConsumedRecords
		}
		c.maxConsumedRecords = n
	}
}

// entry is a tracked allocation. gen changes every time an address is
// handed out, so a stale handle to a reused address is detectable.
type entry struct {
	buf []byte
	gen uint32
}

// pin keeps a borrowed buffer addressable while a View is live.
type pin struct {
	buf  []byte
	refs int
}

var memoryManager = struct {
	sync.Mutex
	entries        map[uint32]*entry // ptr -> owned allocation
	views          map[uint32]*pin   // ptr -> borrowed buffer
	consumed       map[uint32]uint64 // descriptor -> consumption sequence
	consumedOrder  []consumedRecord  // oldest first
	cfg            config
	totalAllocated int
	gen            uint32
	seq            uint64
}{
	entries:  make(map[uint32]*entry),
	views:    make(map[uint32]*pin),
	consumed: make(map[uint32]uint64),
	cfg: config{
		maxTotalAllocations: DefaultMaxTotalAllocations,
		maxConsumedRecords:  DefaultMaxConsumedRecords,
	},
}

type consumedRecord struct {
	ptr uint32
	seq uint64
}

// Configure applies options to the memory manager.
func Configure(opts ...Option) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	for _, opt := range opts {
		opt(&memoryManager.cfg)
	}
	trimConsumed()
}

// markConsumed records ptr as consumed, evicting the oldest records past the
// configured bound. Callers hold the lock.
func markConsumed(ptr uint32) {
	memoryManager.seq++
	memoryManager.consumed[ptr] = memoryManager.seq
	memoryManager.consumedOrder = append(memoryManager.consumedOrder, consumedRecord{ptr: ptr, seq: memoryManager.seq})
	trimConsumed()
}

// trimConsumed must be called with the lock held. A queued record whose
// address was reallocated or consumed again is stale and only dequeued.
func trimConsumed() {
	order := memoryManager.consumedOrder
	for len(order) > 0 && (len(memoryManager.consumed) > memoryManager.cfg.maxConsumedRecords || isStale(order[0])) {
		if !isStale(order[0]) {
			delete(memoryManager.consumed, order[0].ptr)
		}
		order = order[1:]
	}
	if len(order) > 2*memoryManager.cfg.maxConsumedRecords {
		live := make([]consumedRecord, 0, len(memoryManager.consumed))
		for _, r := range order {
			if !isStale(r) {
				live = append(live, r)
			}
		}
		order = live
	}
	if len(order) == 0 {
		order = nil
	}
	memoryManager.consumedOrder = order
}

func isStale(r consumedRecord) bool {
	seq, ok := memoryManager.consumed[r.ptr]
	return !ok || seq != r.seq
}

// ConsumedRecords returns the number of consumed descriptors currently
// remembered.
func ConsumedRecords() int {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.consumed)
}

// Allocate reserves size bytes and returns their address, or 0 for size 0.
// It panics with an Oversize fault when the ceiling would be exceeded.
func Allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	limit := memoryManager.cfg.maxTotalAllocations
	if memoryManager.totalAllocated+int(size) > limit {
		panic(&cdkerrors.Fault{
			Kind: cdkerrors.Oversize,
			Message: fmt.Sprintf("memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
				size, memoryManager.totalAllocated, limit),
		})
	}

	buf := make([]byte, size)
	ptr := place(buf)
	memoryManager.gen++
	memoryManager.entries[ptr] = &entry{buf: buf, gen: memoryManager.gen}
	delete(memoryManager.consumed, ptr)
	memoryManager.totalAllocated += int(size)
	return ptr
}

// Deallocate releases an allocation that was never consumed. Unknown
// addresses are ignored, so a double free is harmless. The accounting uses
// the stored length rather than size.
func Deallocate(ptr, size uint32) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	dropEntry(ptr)
}

// dropEntry must be called with the lock held.
func dropEntry(ptr uint32) {
	e, ok := memoryManager.entries[ptr]
	if !ok {
		return
	}
	delete(memoryManager.entries, ptr)
	memoryManager.totalAllocated -= len(e.buf)
	if memoryManager.totalAllocated < 0 {
		memoryManager.totalAllocated = 0
	}
}

// FreeAllTracked drops every tracked allocation, borrowed view and
// consumption record. Called when an invocation ends abnormally.
func FreeAllTracked() {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	clear(memoryManager.entries)
	clear(memoryManager.views)
	clear(memoryManager.consumed)
	memoryManager.consumedOrder = nil
	memoryManager.seq = 0
	memoryManager.totalAllocated = 0
}

// Stats returns the number of tracked allocations and their total size.
func Stats() (allocCount int, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.entries), memoryManager.totalAllocated
}

// ReadMemory copies n bytes at ptr. ok is false when the range is not
// addressable.
func ReadMemory(ptr, n uint32) (data []byte, ok bool) {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	src, ok := lookup(ptr, n)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), src...), true
}

// WriteMemory copies data to ptr. ok is false when the range is not
// addressable.
func WriteMemory(ptr uint32, data []byte) bool {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	dst, ok := lookup(ptr, uint32(len(data)))
	if !ok {
		return false
	}
	copy(dst, data)
	return true
}
