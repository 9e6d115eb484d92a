package entities

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_RoundTrip(t *testing.T) {
	samples := []Address{
		{},
		MustParseAddress("0x0102030405060708090a0b0c0d0e0f1011121314"),
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for i := 0; i < AddressLength; i++ {
		var a Address
		a[i] = byte(0xa0 + i)
		samples = append(samples, a)
	}

	for _, addr := range samples {
		text := addr.String()
		assert.Len(t, text, AddressTextLength)
		assert.Equal(t, strings.ToLower(text), text)

		parsed, err := ParseAddress(text)
		require.NoError(t, err)
		assert.Equal(t, addr, parsed)
	}
}

func TestParseAddress_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"non-hex", "0xZZ" + strings.Repeat("00", 19), ErrAddressHex},
		{"41 characters", "0x" + strings.Repeat("a", 39), ErrAddressLength},
		{"43 characters", "0x" + strings.Repeat("a", 41), ErrAddressLength},
		{"empty", "", ErrAddressLength},
		{"missing prefix", "ab" + strings.Repeat("00", 20), ErrAddressPrefix},
		{"upper prefix", "0X" + strings.Repeat("00", 20), ErrAddressPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.cause))
			assert.True(t, cdkerrors.IsDecodeKind(err, cdkerrors.IrregularData))
		})
	}
}

func TestParseAddress_AcceptsUpperHex(t *testing.T) {
	a, err := ParseAddress("0xABCDEF0000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0000000000000000000000000000000001", a.String())
}

func TestAddressFromBytes(t *testing.T) {
	raw := make([]byte, AddressLength)
	raw[19] = 9
	a, err := AddressFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, a.Bytes())
	assert.False(t, a.IsZero())

	_, err = AddressFromBytes(raw[:5])
	assert.True(t, cdkerrors.IsDecodeKind(err, cdkerrors.UnexpectedEOF))
}

func TestAddress_JSON(t *testing.T) {
	type wrapper struct {
		To Address `json:"to"`
	}
	in := wrapper{To: MustParseAddress("0x00000000000000000000000000000000000000aa")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"0x00000000000000000000000000000000000000aa"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"to":"nope"}`), &out))
}

func TestMustParseAddress_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseAddress("0x1") })
}
