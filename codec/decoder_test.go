package codec

import (
	"testing"

	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode3_OrderSensitivity(t *testing.T) {
	sink := NewSink(0)
	sink.WriteU32(7)
	sink.WriteString("abc")
	sink.WriteI64(-5)

	a, b, c, err := Decode3(NewSource(sink.Bytes()), U32, String, I64)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), a)
	assert.Equal(t, "abc", b)
	assert.Equal(t, int64(-5), c)
}

func TestDecode3_SwappedOrderNeverMatches(t *testing.T) {
	// Encoded as (string, u32, i64) but decoded as (u32, string, i64).
	sink := NewSink(0)
	sink.WriteString("abc")
	sink.WriteU32(7)
	sink.WriteI64(-5)

	a, b, c, err := Decode3(NewSource(sink.Bytes()), U32, String, I64)
	if err == nil {
		assert.False(t, a == 7 && b == "abc" && c == -5)
		return
	}
	var de *cdkerrors.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestDecode12_MaxArity(t *testing.T) {
	sink := NewSink(0)
	sink.WriteBool(true)
	sink.WriteU8(8)
	sink.WriteU32(32)
	sink.WriteI32(-32)
	sink.WriteU64(64)
	sink.WriteI64(-64)
	sink.WriteU128(entities.NewU128(128))
	sink.WriteI128(entities.NewI128(-128))
	sink.WriteString("str")
	sink.WriteBytes([]byte{1, 2})
	sink.WriteAddress(entities.Address{9})
	sink.WriteContractResult(entities.Ok([]byte("r")))

	v1, v2, v3, v4, v5, v6, v7, v8, v9, v10, v11, v12, err := Decode12(NewSource(sink.Bytes()),
		Bool, Byte, U32, I32, U64, I64, U128, I128, String, Bytes, Address, Result)
	require.NoError(t, err)
	assert.True(t, v1)
	assert.Equal(t, byte(8), v2)
	assert.Equal(t, uint32(32), v3)
	assert.Equal(t, int32(-32), v4)
	assert.Equal(t, uint64(64), v5)
	assert.Equal(t, int64(-64), v6)
	assert.Equal(t, entities.NewU128(128), v7)
	assert.Equal(t, entities.NewI128(-128), v8)
	assert.Equal(t, "str", v9)
	assert.Equal(t, []byte{1, 2}, v10)
	assert.Equal(t, entities.Address{9}, v11)
	assert.True(t, v12.IsOk())
}

func TestDecode_StopsAtFirstError(t *testing.T) {
	calls := 0
	counting := DecoderFunc[uint32](func(src *Source) (uint32, error) {
		calls++
		return src.ReadU32()
	})

	_, _, _, err := Decode3(NewSource([]byte{1, 0, 0, 0}), counting, counting, counting)
	assert.True(t, cdkerrors.IsDecodeKind(err, cdkerrors.UnexpectedEOF))
	assert.Equal(t, 2, calls)
}

func TestSliceOf(t *testing.T) {
	sink := NewSink(0)
	sink.WriteU32(3)
	sink.WriteString("a")
	sink.WriteString("b")
	sink.WriteString("c")

	got, err := SliceOf(String).Decode(NewSource(sink.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, err = SliceOf(U64).Decode(NewSource([]byte{0xff, 0xff, 0xff, 0xff}))
	assert.True(t, cdkerrors.IsDecodeKind(err, cdkerrors.UnexpectedEOF))
}

func TestEventDecoder(t *testing.T) {
	ev := entities.NewEvent("e").AddInt64("k", 1)
	got, err := Event.Decode(NewSource(EncodeEvent(ev)))
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}
