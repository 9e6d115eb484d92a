package codec

import (
	"fmt"

	"github.com/c123chain/cdk-go/domain/entities"
	cdkerrors "github.com/c123chain/cdk-go/domain/errors"
)

// WriteContractResult appends [ok flag][u32 len][payload].
func (s *Sink) WriteContractResult(r entities.ContractResult) {
	s.WriteBool(r.OK)
	s.WriteBytes(r.Payload())
}

// ReadContractResult reads the form written by WriteContractResult. An Err
// payload must be valid UTF-8.
func (s *Source) ReadContractResult() (entities.ContractResult, error) {
	ok, err := s.ReadBool()
	if err != nil {
		return entities.ContractResult{}, err
	}
	if !ok {
		msg, err := s.ReadString()
		if err != nil {
			return entities.ContractResult{}, err
		}
		return entities.Err(msg), nil
	}
	data, err := s.ReadBytes()
	if err != nil {
		return entities.ContractResult{}, err
	}
	return entities.Ok(append([]byte(nil), data...)), nil
}

// WriteEvent appends [type][u32 count][{key, tag, value}...].
func (s *Sink) WriteEvent(e *entities.Event) {
	s.WriteString(e.Type)
	s.WriteU32(checkedLen(len(e.Attributes)))
	for _, attr := range e.Attributes {
		s.WriteString(attr.Key)
		s.WriteU8(byte(attr.Value.Kind))
		switch attr.Value.Kind {
		case entities.ValueInt64:
			s.WriteI64(attr.Value.Int)
		case entities.ValueString:
			s.WriteString(attr.Value.Str)
		default:
			panic(fmt.Sprintf("codec: unknown event value kind %d", attr.Value.Kind))
		}
	}
}

// ReadEvent reads the form written by WriteEvent.
func (s *Source) ReadEvent() (*entities.Event, error) {
	typ, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	count, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	ev := entities.NewEvent(typ)
	// An attribute takes at least 9 bytes.
	if int(count) >= 0 && int(count) <= s.Remaining()/9 {
		ev.Attributes = make([]entities.Attribute, 0, count)
	}
	for i := uint32(0); i < count; i++ {
		key, err := s.ReadString()
		if err != nil {
			return nil, err
		}
		pos := s.pos
		tag, err := s.ReadU8()
		if err != nil {
			return nil, err
		}
		switch entities.ValueKind(tag) {
		case entities.ValueInt64:
			v, err := s.ReadI64()
			if err != nil {
				return nil, err
			}
			ev.AddInt64(key, v)
		case entities.ValueString:
			v, err := s.ReadString()
			if err != nil {
				return nil, err
			}
			ev.AddString(key, v)
		default:
			return nil, &cdkerrors.DecodeError{
				Kind: cdkerrors.IrregularData,
				What: "event attribute",
				Pos:  pos,
				Err:  fmt.Errorf("unknown value tag %d", tag),
			}
		}
	}
	return ev, nil
}

// WriteBlockHeader appends height then timestamp as u64.
func (s *Sink) WriteBlockHeader(h entities.BlockHeader) {
	s.WriteU64(h.Height)
	s.WriteU64(h.Timestamp)
}

func (s *Source) ReadBlockHeader() (entities.BlockHeader, error) {
	height, err := s.ReadU64()
	if err != nil {
		return entities.BlockHeader{}, err
	}
	ts, err := s.ReadU64()
	if err != nil {
		return entities.BlockHeader{}, err
	}
	return entities.BlockHeader{Height: height, Timestamp: ts}, nil
}

// WriteContractMeta appends code, name, version, author, email and
// description, each length-prefixed.
func (s *Sink) WriteContractMeta(m entities.ContractMeta) {
	s.WriteBytes(m.Code)
	s.WriteString(m.Name)
	s.WriteString(m.Version)
	s.WriteString(m.Author)
	s.WriteString(m.Email)
	s.WriteString(m.Description)
}

func (s *Source) ReadContractMeta() (entities.ContractMeta, error) {
	var m entities.ContractMeta
	code, err := s.ReadBytes()
	if err != nil {
		return m, err
	}
	m.Code = append([]byte(nil), code...)
	fields := []*string{&m.Name, &m.Version, &m.Author, &m.Email, &m.Description}
	for _, f := range fields {
		if *f, err = s.ReadString(); err != nil {
			return entities.ContractMeta{}, err
		}
	}
	return m, nil
}

// WriteAddresses appends [u32 count][20 bytes each].
func (s *Sink) WriteAddresses(addrs []entities.Address) {
	s.WriteU32(checkedLen(len(addrs)))
	for _, a := range addrs {
		s.WriteAddress(a)
	}
}

func (s *Source) ReadAddresses() ([]entities.Address, error) {
	n, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(n)*entities.AddressLength > uint64(s.Remaining()) {
		return nil, &cdkerrors.DecodeError{
			Kind: cdkerrors.UnexpectedEOF,
			What: "address list",
			Pos:  s.pos,
			Want: int(n) * entities.AddressLength,
			Have: s.Remaining(),
		}
	}
	out := make([]entities.Address, n)
	for i := range out {
		if out[i], err = s.ReadAddress(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteU128s appends [u32 count][16 bytes each].
func (s *Sink) WriteU128s(values []entities.U128) {
	s.WriteU32(checkedLen(len(values)))
	for _, v := range values {
		s.WriteU128(v)
	}
}

func (s *Source) ReadU128s() ([]entities.U128, error) {
	n, err := s.ReadU32()
	if err != nil {
		return nil, err
	}
	if uint64(n)*entities.Int128Size > uint64(s.Remaining()) {
		return nil, &cdkerrors.DecodeError{
			Kind: cdkerrors.UnexpectedEOF,
			What: "u128 list",
			Pos:  s.pos,
			Want: int(n) * entities.Int128Size,
			Have: s.Remaining(),
		}
	}
	out := make([]entities.U128, n)
	for i := range out {
		if out[i], err = s.ReadU128(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeContractResult returns the wire form of r.
func EncodeContractResult(r entities.ContractResult) []byte {
	sink := NewSink(5 + len(r.Data) + len(r.Message))
	sink.WriteContractResult(r)
	return sink.Bytes()
}

// DecodeContractResult decodes b, which must hold exactly one result.
func DecodeContractResult(b []byte) (entities.ContractResult, error) {
	src := NewSource(b)
	r, err := src.ReadContractResult()
	if err != nil {
		return entities.ContractResult{}, err
	}
	if err := src.Finish("contract result"); err != nil {
		return entities.ContractResult{}, err
	}
	return r, nil
}

// EncodeEvent returns the wire form of e.
func EncodeEvent(e *entities.Event) []byte {
	sink := NewSink(64)
	sink.WriteEvent(e)
	return sink.Bytes()
}

// DecodeEvent decodes b, which must hold exactly one event.
func DecodeEvent(b []byte) (*entities.Event, error) {
	src := NewSource(b)
	ev, err := src.ReadEvent()
	if err != nil {
		return nil, err
	}
	if err := src.Finish("event"); err != nil {
		return nil, err
	}
	return ev, nil
}
