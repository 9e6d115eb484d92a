package hostfuncs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_DebugCap(t *testing.T) {
	s := NewSession()
	s.maxDebug = 10

	s.AddDebug("12345")
	s.AddDebug("67890")
	s.AddDebug("x")

	assert.Len(t, s.Debug(), 2)
	assert.Equal(t, 1, s.DroppedDebug())
}

func TestSession_FirstAbortWins(t *testing.T) {
	s := NewSession()
	s.Abort("first")
	s.Abort("second")

	msg, ok := s.Aborted()
	assert.True(t, ok)
	assert.Equal(t, "first", msg)
}

func TestSession_Defaults(t *testing.T) {
	s := NewSession()
	_, ok := s.Result()
	assert.False(t, ok)
	_, ok = s.Migrated()
	assert.False(t, ok)
	assert.False(t, s.Destroyed())
	assert.Empty(t, s.Events())
}
