package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager(0)
	defer m.Close()

	s := m.Create("sample1.wav", "sample1", "/audio/sample1.wav", 60.0, 2)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("nope")
	assert.False(t, ok)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Count())
}

func TestManager_SessionIDsUnique(t *testing.T) {
	m := NewManager(0)
	defer m.Close()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		s := m.Create("sample1.wav", "sample1", "/audio/sample1.wav", 60.0, 2)
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}

func TestManager_EvictsIdleSessions(t *testing.T) {
	m := NewManager(40 * time.Millisecond)
	defer m.Close()

	s := m.Create("sample1.wav", "sample1", "/audio/sample1.wav", 60.0, 2)

	require.Eventually(t, func() bool {
		_, ok := m.Get(s.ID)
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, m.Count())
}
