//go:build !wasip1

package abi

import (
	"fmt"
	"math"
)

// arenaBase keeps synthetic addresses well away from the null pointer.
const arenaBase = 0x10000

// Native builds have no linear memory, so buffers get synthetic offsets from
// a bump counter. Offsets are never reused.
var arena = struct {
	next uint64
}{next: arenaBase}

// place assigns buf a fresh synthetic address. Callers hold the lock.
func place(buf []byte) uint32 {
	size := uint64(len(buf))
	if size == 0 {
		size = 1
	}
	ptr := arena.next
	arena.next += (size + 7) &^ 7
	if arena.next > math.MaxUint32 {
		panic(fmt.Sprintf("abi: native arena exhausted at %#x", ptr))
	}
	return uint32(ptr)
}

// lookup resolves [ptr, ptr+n) to the tracked buffer containing it.
// Callers hold the lock.
func lookup(ptr, n uint32) ([]byte, bool) {
	if ptr == 0 {
		return nil, false
	}
	if e, ok := memoryManager.entries[ptr]; ok {
		return within(e.buf, 0, n)
	}
	if p, ok := memoryManager.views[ptr]; ok {
		return within(p.buf, 0, n)
	}
	for base, e := range memoryManager.entries {
		if ptr > base && uint64(ptr) < uint64(base)+uint64(len(e.buf)) {
			return within(e.buf, ptr-base, n)
		}
	}
	for base, p := range memoryManager.views {
		if ptr > base && uint64(ptr) < uint64(base)+uint64(len(p.buf)) {
			return within(p.buf, ptr-base, n)
		}
	}
	return nil, false
}

func within(buf []byte, off, n uint32) ([]byte, bool) {
	end := uint64(off) + uint64(n)
	if end > uint64(len(buf)) {
		return nil, false
	}
	return buf[off:end], true
}
