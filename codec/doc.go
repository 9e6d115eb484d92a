// Package codec implements the wire format shared by contracts and hosts.
//
// All numerics are fixed-width little-endian. Byte sequences and strings are
// prefixed with a u32 length. A Sink appends to a growable buffer; a Source
// reads from an immutable buffer with a cursor and returns a
// *errors.DecodeError on truncated or malformed input. After a read error
// the Source must be abandoned.
//
// Typed decoding goes through the Decoder interface. Decode1 through Decode12
// compose decoders left to right and are generated by internal/tuplegen.
package codec
