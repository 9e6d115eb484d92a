package errors

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError_UnexpectedEOF(t *testing.T) {
	err := &DecodeError{Kind: UnexpectedEOF, What: "u32", Pos: 2, Want: 4, Have: 1}

	assert.Equal(t, "decode u32 at 2: unexpected eof (need 4 bytes, have 1)", err.Error())
	assert.True(t, IsDecodeKind(err, UnexpectedEOF))
	assert.False(t, IsDecodeKind(err, InvalidUtf8))
	assert.True(t, errors.Is(err, &DecodeError{Kind: UnexpectedEOF}))
	assert.False(t, errors.Is(err, &DecodeError{Kind: IrregularData}))
}

func TestDecodeError_Wrapped(t *testing.T) {
	baseErr := fmt.Errorf("bool byte 0x07")
	err := &DecodeError{Kind: IrregularData, What: "bool", Pos: 0, Err: baseErr}

	assert.Equal(t, "decode bool at 0: irregular_data: bool byte 0x07", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	wrapped := fmt.Errorf("decode args: %w", err)
	var decErr *DecodeError
	require.True(t, errors.As(wrapped, &decErr))
	assert.Equal(t, IrregularData, decErr.Kind)
	assert.True(t, IsDecodeKind(wrapped, IrregularData))
}

func TestDecodeError_NoCause(t *testing.T) {
	err := &DecodeError{Kind: InvalidUtf8, What: "string", Pos: 4}
	assert.Equal(t, "decode string at 4: invalid_utf8", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestCompileError(t *testing.T) {
	tests := []struct {
		name string
		err  *CompileError
		want string
	}{
		{
			name: "unsupported arg",
			err:  &CompileError{Kind: UnsupportedArgType, Func: "Transfer", Param: "amount", Type: "float64"},
			want: `func Transfer: parameter "amount": expected one of: bool, uint32, int32, uint64, int64, U128, I128, string, []byte (got float64)`,
		},
		{
			name: "unsupported return with position",
			err:  &CompileError{Kind: UnsupportedReturnType, Func: "Get", Type: "int", Pos: "kv.go:10:1"},
			want: "kv.go:10:1: func Get: expected ContractResult or no result (got int)",
		},
		{
			name: "receiver",
			err:  &CompileError{Kind: ExpectedFunctionArgs, Func: "Run"},
			want: "func Run: expected function args, found method receiver",
		},
		{
			name: "duplicate identifier",
			err:  &CompileError{Kind: DuplicateIdentifier, Func: "Set", Param: "k"},
			want: `func Set: parameter "k": identifier used as parameter more than once`,
		},
		{
			name: "reserved identifier",
			err:  &CompileError{Kind: ReservedIdentifier, Type: "dispatch_Get", Pos: "kv.go:3:6"},
			want: "kv.go:3:6: identifier is reserved for generated code (got dispatch_Get)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, IsCompileKind(fmt.Errorf("wrap: %w", tt.err), tt.err.Kind))
		})
	}
}

func TestFault(t *testing.T) {
	assert.Equal(t, "add overflow", (&Fault{Kind: Arithmetic, Message: "add overflow"}).Error())
	assert.Equal(t, "boom", (&Fault{Kind: Abort, Message: "boom"}).Error())
	assert.Equal(t, "fault: double_consume: region 0x10", (&Fault{Kind: DoubleConsume, Message: "region 0x10"}).Error())
	assert.Equal(t, "fault: null_pointer", (&Fault{Kind: NullPointer}).Error())
}

func TestAsFault(t *testing.T) {
	f := &Fault{Kind: Oversize, Message: "too big"}

	got, ok := AsFault(f)
	require.True(t, ok)
	assert.Same(t, f, got)

	got, ok = AsFault(fmt.Errorf("ctx: %w", f))
	require.True(t, ok)
	assert.Same(t, f, got)

	_, ok = AsFault("plain string panic")
	assert.False(t, ok)

	_, ok = AsFault(errors.New("other"))
	assert.False(t, ok)
}

func TestContractError(t *testing.T) {
	err := NewContractError("insufficient funds: have %d", 3)
	assert.Equal(t, "insufficient funds: have 3", err.Error())
	assert.True(t, utf8.ValidString(err.Error()))

	base := errors.New("key missing")
	wrapped := &ContractError{Message: "lookup failed", Err: base}
	assert.Equal(t, "lookup failed: key missing", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}
