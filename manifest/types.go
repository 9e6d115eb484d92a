package manifest

import (
	"fmt"

	"github.com/c123chain/cdk-go/codec"
	"github.com/c123chain/cdk-go/domain/entities"
	"github.com/c123chain/cdk-go/manifest/abi"
)

// TypeTag names a wire type in the manifest.
type TypeTag = abi.TypeTag

const (
	TypeBool           = abi.TypeBool
	TypeU32            = abi.TypeU32
	TypeI32            = abi.TypeI32
	TypeU64            = abi.TypeU64
	TypeI64            = abi.TypeI64
	TypeU128           = abi.TypeU128
	TypeI128           = abi.TypeI128
	TypeString         = abi.TypeString
	TypeBytes          = abi.TypeBytes
	TypeContractResult = abi.TypeContractResult
)

// ExportPrefix starts every export name.
const ExportPrefix = abi.ExportPrefix

var (
	ErrExportPrefix = abi.ErrExportPrefix
	ErrExportHex    = abi.ErrExportHex
	ErrExportUTF8   = abi.ErrExportUTF8
)

// ExportName maps a function name to its wasm export name. See
// abi.ExportName.
func ExportName(function string) string { return abi.ExportName(function) }

// FunctionName reverses ExportName.
func FunctionName(export string) (string, error) { return abi.FunctionName(export) }

// TagOf returns the tag for a Go argument value.
func TagOf(v any) (TypeTag, bool) {
	switch v.(type) {
	case bool:
		return TypeBool, true
	case uint32:
		return TypeU32, true
	case int32:
		return TypeI32, true
	case uint64:
		return TypeU64, true
	case int64:
		return TypeI64, true
	case entities.U128:
		return TypeU128, true
	case entities.I128:
		return TypeI128, true
	case string:
		return TypeString, true
	case []byte:
		return TypeBytes, true
	default:
		return "", false
	}
}

// EncodeValue appends v to sink as tag. v must have the Go type TagOf maps
// to tag.
func EncodeValue(sink *codec.Sink, tag TypeTag, v any) error {
	got, ok := TagOf(v)
	if !ok {
		return fmt.Errorf("unsupported argument type %T", v)
	}
	if got != tag {
		return fmt.Errorf("argument of type %T does not match %s", v, tag)
	}
	switch x := v.(type) {
	case bool:
		sink.WriteBool(x)
	case uint32:
		sink.WriteU32(x)
	case int32:
		sink.WriteI32(x)
	case uint64:
		sink.WriteU64(x)
	case int64:
		sink.WriteI64(x)
	case entities.U128:
		sink.WriteU128(x)
	case entities.I128:
		sink.WriteI128(x)
	case string:
		sink.WriteString(x)
	case []byte:
		sink.WriteBytes(x)
	}
	return nil
}

// EncodeArgs encodes args for entry, checking count and types.
func EncodeArgs(e Entry, args ...any) ([]byte, error) {
	if len(args) != len(e.Params) {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", e.Function, len(args), len(e.Params))
	}
	sink := codec.NewSink(64)
	for i, p := range e.Params {
		if err := EncodeValue(sink, p.Type, args[i]); err != nil {
			return nil, fmt.Errorf("%s: parameter %s: %w", e.Function, p.Name, err)
		}
	}
	return sink.Bytes(), nil
}
