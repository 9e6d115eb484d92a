package runtime

import (
	"github.com/c123chain/cdk-go/internal/abi"
	"github.com/c123chain/cdk-go/internal/hostcall"
)

// SpeculativeReadSize is the size of the first read_db buffer. Values that
// fit are fetched in one hostcall; larger values take a second call for the
// bytes past this offset.
const SpeculativeReadSize = 32

// Store is the contract's key/value storage. Keys are namespaced by a fixed
// prefix before they reach the host.
type Store struct {
	prefix []byte
}

// Prefix returns the key prefix.
func (s *Store) Prefix() string { return string(s.prefix) }

func (s *Store) key(k []byte) []byte {
	full := make([]byte, 0, len(s.prefix)+len(k))
	full = append(full, s.prefix...)
	return append(full, k...)
}

// Get returns the value stored under key, or false when the key is absent.
func (s *Store) Get(key []byte) ([]byte, bool) {
	k := abi.BuildRegion(s.key(key))
	defer k.Release()

	head := abi.AllocateRegion(SpeculativeReadSize)
	size := hostcall.ReadDB(k.Ptr(), head.Ptr(), 0)
	if size < 0 {
		head.Release()
		return nil, false
	}
	first := head.Bytes()
	head.Release()

	value := make([]byte, size)
	copy(value, first)
	if size > SpeculativeReadSize {
		tail := abi.AllocateRegion(uint32(size - SpeculativeReadSize))
		hostcall.ReadDB(k.Ptr(), tail.Ptr(), SpeculativeReadSize)
		copy(value[SpeculativeReadSize:], tail.Bytes())
		tail.Release()
	}
	return value, true
}

// Has reports whether key is present.
func (s *Store) Has(key []byte) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores value under key.
func (s *Store) Set(key, value []byte) {
	k := abi.BuildRegion(s.key(key))
	defer k.Release()
	v := abi.BuildRegion(value)
	defer v.Release()
	hostcall.WriteDB(k.Ptr(), v.Ptr())
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key []byte) {
	k := abi.BuildRegion(s.key(key))
	defer k.Release()
	hostcall.DeleteDB(k.Ptr())
}
