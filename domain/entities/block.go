package entities

// BlockHeaderSize is the wire size of a BlockHeader: two little-endian u64.
const BlockHeaderSize = 16

// BlockHeader identifies the block an invocation executes in.
type BlockHeader struct {
	Height    uint64 `json:"height"`
	Timestamp uint64 `json:"timestamp"`
}
