package abi

import (
	"fmt"

	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/c123chain/cdk-go/internal/hostcall"
)

// View is a descriptor the guest hands to the host for the duration of one
// hostcall. The guest keeps ownership of the described buffer and releases
// the View afterwards.
type View struct {
	ptr      uint32 // descriptor address
	data     uint32 // buffer address
	buf      []byte
	owned    bool // buffer came from Allocate
	released bool
}

// BuildRegion describes buf without taking ownership of it. The host may
// read buf until the View is released.
func BuildRegion(buf []byte) *View {
	memoryManager.Lock()
	data := place(buf)
	if p, ok := memoryManager.views[data]; ok {
		p.refs++
	} else {
		memoryManager.views[data] = &pin{buf: buf, refs: 1}
	}
	memoryManager.Unlock()

	n := uint32(len(buf))
	v := &View{data: data, buf: buf}
	v.ptr = writeDescriptor(entities.Region{Offset: data, Capacity: n, Length: n})
	return v
}

// AllocateRegion reserves a guest-owned buffer of the given capacity for the
// host to fill in place. The host reports how much it wrote by updating the
// descriptor's length.
func AllocateRegion(capacity uint32) *View {
	if capacity == 0 {
		capacity = 1
	}
	data := Allocate(capacity)
	v := &View{data: data, owned: true}
	v.ptr = writeDescriptor(entities.Region{Offset: data, Capacity: capacity})
	return v
}

func writeDescriptor(r entities.Region) uint32 {
	ptr := Allocate(entities.RegionSize)
	b := r.Bytes()
	WriteMemory(ptr, b[:])
	return ptr
}

// Ptr returns the descriptor address passed to the host.
func (v *View) Ptr() uint32 { return v.ptr }

// Region reads the descriptor back from memory.
func (v *View) Region() entities.Region {
	raw, ok := ReadMemory(v.ptr, entities.RegionSize)
	if !ok {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("view descriptor %#x is gone", v.ptr)})
		return entities.Region{}
	}
	r, _ := entities.RegionFromBytes(raw)
	return r
}

// Bytes returns a copy of the described bytes, honoring a length the host
// may have written.
func (v *View) Bytes() []byte {
	r := v.Region()
	if r.Length > r.Capacity {
		Fatal(&cdkerrors.Fault{
			Kind:    cdkerrors.InvalidRegion,
			Message: fmt.Sprintf("host wrote length %d into region of capacity %d", r.Length, r.Capacity),
		})
		return nil
	}
	data, ok := ReadMemory(v.data, r.Length)
	if !ok {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("view buffer %#x is gone", v.data)})
		return nil
	}
	return data
}

// Release frees the descriptor and unpins or frees the buffer. Calling
// Release more than once has no effect.
func (v *View) Release() {
	if v.released {
		return
	}
	v.released = true

	memoryManager.Lock()
	defer memoryManager.Unlock()

	dropEntry(v.ptr)
	if v.owned {
		dropEntry(v.data)
		return
	}
	if p, ok := memoryManager.views[v.data]; ok {
		p.refs--
		if p.refs <= 0 {
			delete(memoryManager.views, v.data)
		}
	}
}

// Owned is a one-shot claim on a host-produced descriptor. Copies share the
// claim: whichever copy consumes first wins and every later attempt is a
// DoubleConsume fault.
type Owned struct {
	ptr      uint32
	gen      uint32
	consumed bool
}

// TakeOwnership claims the descriptor at ptr, which the host returned from a
// hostcall. A null, unknown or already-consumed descriptor is fatal.
func TakeOwnership(ptr uint32) Owned {
	if ptr == 0 {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.NullPointer, Message: "received null region, refuse to use"})
		return Owned{}
	}

	memoryManager.Lock()
	e, known := memoryManager.entries[ptr]
	_, dead := memoryManager.consumed[ptr]
	memoryManager.Unlock()

	switch {
	case dead:
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.DoubleConsume, Message: fmt.Sprintf("region %#x already consumed", ptr)})
	case !known:
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("region %#x was never allocated", ptr)})
	}
	return Owned{ptr: ptr, gen: e.gen}
}

// Consume converts the descriptor into a buffer owned by the caller and
// frees the descriptor.
func (o *Owned) Consume() []byte {
	if o.consumed {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.DoubleConsume, Message: fmt.Sprintf("region %#x already consumed", o.ptr)})
		return nil
	}
	if o.ptr == 0 {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.NullPointer, Message: "consume of zero handle"})
		return nil
	}
	o.consumed = true
	return consume(o.ptr, o.gen, true)
}

// ConsumeRegion claims and consumes the descriptor at ptr in one step.
func ConsumeRegion(ptr uint32) []byte {
	if ptr == 0 {
		Fatal(&cdkerrors.Fault{Kind: cdkerrors.NullPointer, Message: "received null region, refuse to use"})
		return nil
	}
	return consume(ptr, 0, false)
}

func consume(ptr, gen uint32, checkGen bool) []byte {
	data, fault := takeRegion(ptr, gen, checkGen)
	if fault != nil {
		Fatal(fault)
		return nil
	}
	return data
}

func takeRegion(ptr, gen uint32, checkGen bool) ([]byte, *cdkerrors.Fault) {
	memoryManager.Lock()
	defer memoryManager.Unlock()

	if _, dead := memoryManager.consumed[ptr]; dead {
		return nil, &cdkerrors.Fault{Kind: cdkerrors.DoubleConsume, Message: fmt.Sprintf("region %#x already consumed", ptr)}
	}
	desc, ok := memoryManager.entries[ptr]
	if !ok {
		return nil, &cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("region %#x was never allocated", ptr)}
	}
	if checkGen && desc.gen != gen {
		return nil, &cdkerrors.Fault{Kind: cdkerrors.DoubleConsume, Message: fmt.Sprintf("region %#x was consumed and reallocated", ptr)}
	}

	region, err := entities.RegionFromBytes(desc.buf)
	if err == nil {
		err = region.Validate()
	}
	if err != nil {
		return nil, &cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("region %#x: %v", ptr, err)}
	}
	data, ok := memoryManager.entries[region.Offset]
	if !ok || uint32(len(data.buf)) < region.Capacity {
		return nil, &cdkerrors.Fault{Kind: cdkerrors.InvalidRegion, Message: fmt.Sprintf("region %#x describes unallocated buffer %#x", ptr, region.Offset)}
	}

	dropEntry(ptr)
	dropEntry(region.Offset)
	markConsumed(ptr)
	return data.buf[:region.Length:region.Length], nil
}

// Fatal reports f to the host through panic_contract and raises it as a
// panic. It does not return.
func Fatal(f *cdkerrors.Fault) {
	v := BuildRegion([]byte(f.Error()))
	hostcall.PanicContract(v.Ptr())
	v.Release()
	panic(f)
}
