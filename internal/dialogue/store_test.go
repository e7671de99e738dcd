package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreGetCreatesAndReuses(t *testing.T) {
	st := NewSessionStore()

	s1 := st.Get("abc")
	s1.Name = "Jane"

	s2 := st.Get("abc")
	assert.Same(t, s1, s2)
	assert.Equal(t, "Jane", s2.Name)
	assert.Equal(t, 1, st.Len())
}

func TestSessionStoreGeneratesIDWhenEmpty(t *testing.T) {
	st := NewSessionStore()

	s := st.Get("")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, st.Len())

	other := st.Get("")
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, st.Len())
}

func TestSessionStoreDrop(t *testing.T) {
	st := NewSessionStore()
	st.Get("abc")
	st.Drop("abc")
	assert.Equal(t, 0, st.Len())

	// A fresh session replaces the dropped one.
	s := st.Get("abc")
	assert.False(t, s.Collecting())
}

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	st := NewSessionStore()
	st.Get("stale")
	fresh := st.Get("fresh")

	st.mu.Lock()
	st.sessions["stale"].lastSeen = time.Now().Add(-2 * sessionIdleTTL)
	st.mu.Unlock()

	evicted := st.evictIdle(time.Now().Add(-sessionIdleTTL))
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, st.Len())

	// The fresh session survives; the stale one is recreated from scratch.
	assert.Same(t, fresh, st.Get("fresh"))
	assert.False(t, st.Get("stale").Collecting())
}
