package hostfuncs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, found, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set([]byte("k"), []byte("v")))
	require.NoError(t, s.Set([]byte("empty"), nil))

	v, found, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), v)

	// Present-but-empty values stay distinct from absent keys.
	v, found, err = s.Get([]byte("empty"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, v)

	assert.Equal(t, []string{"empty", "k"}, s.Keys())

	require.NoError(t, s.Delete([]byte("k")))
	require.NoError(t, s.Delete([]byte("missing")))
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set([]byte("k"), value))
	value[0] = 'x'

	got, _, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'y'
	again, _, _ := s.Get([]byte("k"))
	assert.Equal(t, []byte("abc"), again)
}
