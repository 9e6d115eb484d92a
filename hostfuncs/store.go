package hostfuncs

import (
	"bytes"
	"sort"
	"sync"
)

// KVStore is the contract storage backing read_db, write_db and delete_db.
// Keys arrive already namespaced by the contract's prefix.
type KVStore interface {
	Get(key []byte) (value []byte, found bool, err error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// MemoryStore is a KVStore kept in a map. The zero value is not usable; use
// NewMemoryStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *MemoryStore) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A nil value would read back as nil; keep present-but-empty distinct.
	s.data[string(key)] = append([]byte{}, value...)
	return nil
}

func (s *MemoryStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, string(key))
	return nil
}

// Keys returns every stored key in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
