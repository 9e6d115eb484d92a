package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// AllocateExport is the guest function the host allocates regions with.
const AllocateExport = "allocate"

var errNoAllocate = errors.New("guest does not export " + AllocateExport)

// moduleMemory implements hostfuncs.Memory over a wazero module.
type moduleMemory struct {
	module api.Module
}

func (m moduleMemory) Read(ptr, n uint32) ([]byte, bool) {
	data, ok := m.module.Memory().Read(ptr, n)
	if !ok {
		return nil, false
	}
	// Read returns a view; the guest may reuse the bytes.
	return append([]byte(nil), data...), true
}

func (m moduleMemory) Write(ptr uint32, data []byte) bool {
	return m.module.Memory().Write(ptr, data)
}

func (m moduleMemory) Allocate(ctx context.Context, size uint32) (uint32, error) {
	allocate := m.module.ExportedFunction(AllocateExport)
	if allocate == nil {
		return 0, errNoAllocate
	}
	results, err := allocate.Call(ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("allocate returned no results")
	}
	ptr := api.DecodeU32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("allocate returned a null pointer for %d bytes", size)
	}
	return ptr, nil
}
