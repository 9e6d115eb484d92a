package runtime_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c123chain/cdk-go/hostfuncs"
	"github.com/c123chain/cdk-go/runtime"
	"github.com/c123chain/cdk-go/testing/contracttest"
)

func TestStore_SetGetRoundTrip(t *testing.T) {
	h := contracttest.New()

	out := h.Call(func() {
		deps := runtime.MakeDependencies()
		deps.Storage.Set([]byte("k"), []byte("v"))
	}, nil)
	require.False(t, out.Failed())
	contracttest.AssertNoLeaks(t, out)

	var got []byte
	var found bool
	out = h.Call(func() {
		got, found = runtime.MakeDependencies().Storage.Get([]byte("k"))
	}, nil)
	require.False(t, out.Failed())
	contracttest.AssertNoLeaks(t, out)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), got)

	// Keys reach the host namespaced.
	assert.Equal(t, []string{"test-k"}, h.Store().(*hostfuncs.MemoryStore).Keys())
}

func TestStore_ValueSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one byte", 1},
		{"below speculative size", runtime.SpeculativeReadSize - 1},
		{"exactly speculative size", runtime.SpeculativeReadSize},
		{"one past speculative size", runtime.SpeculativeReadSize + 1},
		{"large", 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := contracttest.New()
			value := bytes.Repeat([]byte{0xab}, tt.size)
			for i := range value {
				value[i] = byte(i)
			}
			require.NoError(t, h.Store().Set([]byte("test-blob"), value))

			var got []byte
			var found bool
			out := h.Call(func() {
				got, found = runtime.MakeDependencies().Storage.Get([]byte("blob"))
			}, nil)
			require.False(t, out.Failed())
			contracttest.AssertNoLeaks(t, out)
			assert.True(t, found)
			assert.Len(t, got, tt.size)
			assert.True(t, bytes.Equal(value, got))
		})
	}
}

func TestStore_MissingAndDelete(t *testing.T) {
	h := contracttest.New()
	require.NoError(t, h.Store().Set([]byte("test-gone"), []byte("x")))

	var before, after, missing bool
	out := h.Call(func() {
		s := runtime.MakeDependencies().Storage
		before = s.Has([]byte("gone"))
		s.Delete([]byte("gone"))
		after = s.Has([]byte("gone"))
		_, missing = s.Get([]byte("never"))
		s.Delete([]byte("never"))
	}, nil)
	require.False(t, out.Failed())
	contracttest.AssertNoLeaks(t, out)

	assert.True(t, before)
	assert.False(t, after)
	assert.False(t, missing)
}

func TestStore_CustomPrefix(t *testing.T) {
	h := contracttest.New()

	var prefix string
	out := h.Call(func() {
		s := runtime.MakeDependencies(runtime.WithPrefix("kv/")).Storage
		prefix = s.Prefix()
		s.Set([]byte("a"), []byte("1"))
	}, nil)
	require.False(t, out.Failed())

	assert.Equal(t, "kv/", prefix)
	v, found, err := h.Store().Get([]byte("kv/a"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("1"), v)
}

// readDBRecorder records the capacity and offset of every read_db call.
func readDBRecorder(calls *[]string) hostfuncs.Middleware {
	return func(name string, next hostfuncs.ImportFunc) hostfuncs.ImportFunc {
		if name != "read_db" {
			return next
		}
		return func(ctx context.Context, call *hostfuncs.Call, stack []uint64) error {
			region, err := hostfuncs.ReadDescriptor(call.Memory, uint32(stack[1]))
			if err != nil {
				return err
			}
			*calls = append(*calls, fmt.Sprintf("cap=%d,off=%d", region.Capacity, uint32(stack[2])))
			return next(ctx, call, stack)
		}
	}
}

func TestStore_ReadSequence(t *testing.T) {
	tests := []struct {
		size int
		want []string
	}{
		{5, []string{"cap=32,off=0"}},
		{32, []string{"cap=32,off=0"}},
		{33, []string{"cap=32,off=0", "cap=1,off=32"}},
		{100, []string{"cap=32,off=0", "cap=68,off=32"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size %d", tt.size), func(t *testing.T) {
			var calls []string
			h := contracttest.New(contracttest.WithRegistry(hostfuncs.DefaultRegistry(readDBRecorder(&calls))))
			value := bytes.Repeat([]byte{0x5a}, tt.size)
			require.NoError(t, h.Store().Set([]byte("test-blob"), value))

			var got []byte
			out := h.Call(func() {
				got, _ = runtime.MakeDependencies().Storage.Get([]byte("blob"))
			}, nil)
			require.False(t, out.Failed())
			contracttest.AssertNoLeaks(t, out)

			assert.Equal(t, value, got)
			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestStore_ReadSequence_Missing(t *testing.T) {
	var calls []string
	h := contracttest.New(contracttest.WithRegistry(hostfuncs.DefaultRegistry(readDBRecorder(&calls))))

	var found bool
	out := h.Call(func() {
		_, found = runtime.MakeDependencies().Storage.Get([]byte("absent"))
	}, nil)
	require.False(t, out.Failed())
	assert.False(t, found)
	assert.Equal(t, []string{"cap=32,off=0"}, calls)
}
