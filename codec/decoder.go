package codec

import "github.com/c123chain/cdk-go/domain/entities"

//go:generate go run ../internal/tuplegen -max 12 -o tuple_gen.go

// Decoder decodes a value of type T from a Source.
type Decoder[T any] interface {
	Decode(src *Source) (T, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc[T any] func(src *Source) (T, error)

// Decode calls f(src).
func (f DecoderFunc[T]) Decode(src *Source) (T, error) {
	return f(src)
}

// Predeclared decoders for the primitive wire types.
var (
	Bool    Decoder[bool]                    = DecoderFunc[bool]((*Source).ReadBool)
	Byte    Decoder[byte]                    = DecoderFunc[byte]((*Source).ReadU8)
	U32     Decoder[uint32]                  = DecoderFunc[uint32]((*Source).ReadU32)
	I32     Decoder[int32]                   = DecoderFunc[int32]((*Source).ReadI32)
	U64     Decoder[uint64]                  = DecoderFunc[uint64]((*Source).ReadU64)
	I64     Decoder[int64]                   = DecoderFunc[int64]((*Source).ReadI64)
	U128    Decoder[entities.U128]           = DecoderFunc[entities.U128]((*Source).ReadU128)
	I128    Decoder[entities.I128]           = DecoderFunc[entities.I128]((*Source).ReadI128)
	String  Decoder[string]                  = DecoderFunc[string]((*Source).ReadString)
	Bytes   Decoder[[]byte]                  = DecoderFunc[[]byte]((*Source).ReadBytes)
	Address Decoder[entities.Address]        = DecoderFunc[entities.Address]((*Source).ReadAddress)
	Event   Decoder[*entities.Event]         = DecoderFunc[*entities.Event]((*Source).ReadEvent)
	Result  Decoder[entities.ContractResult] = DecoderFunc[entities.ContractResult]((*Source).ReadContractResult)
)

// SliceOf decodes a u32 count followed by that many elements.
func SliceOf[T any](elem Decoder[T]) Decoder[[]T] {
	return DecoderFunc[[]T](func(src *Source) ([]T, error) {
		n, err := src.ReadU32()
		if err != nil {
			return nil, err
		}
		var out []T
		if int(n) >= 0 && int(n) <= src.Remaining() {
			out = make([]T, 0, n)
		}
		for i := uint32(0); i < n; i++ {
			v, err := elem.Decode(src)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}
