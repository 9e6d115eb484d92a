//go:build wasip1

package abi

import "unsafe"

// emptyBuf gives zero-length views a non-zero address.
var emptyBuf [1]byte

// allocate reserves memory in the WASM linear memory for the host.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	return Allocate(size)
}

// deallocate frees memory the host obtained from allocate.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	Deallocate(ptr, size)
}

// place returns the linear-memory address of buf.
func place(buf []byte) uint32 {
	if cap(buf) == 0 {
		return uint32(uintptr(unsafe.Pointer(&emptyBuf[0])))
	}
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
}

// lookup exposes n bytes of linear memory at ptr.
func lookup(ptr, n uint32) ([]byte, bool) {
	if ptr == 0 {
		return nil, false
	}
	if n == 0 {
		return []byte{}, true
	}
	// WASM linear memory: uint32 offset -> pointer conversion is safe and necessary
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), n), true
}
