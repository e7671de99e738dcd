package dialogue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions idle longer than this are evicted by the background sweep.
const sessionIdleTTL = 24 * time.Hour

// SessionStore holds one Session per active conversation. Sessions are
// in-memory and single-conversation; the store only guards the map itself.
// Idle sessions are swept periodically so the map stays bounded.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

// NewSessionStore creates an empty store and starts the idle sweep.
func NewSessionStore() *SessionStore {
	st := &SessionStore{sessions: make(map[string]*sessionEntry)}
	go st.sweep()
	return st
}

// Get returns the session for id, creating it when absent. An empty id
// allocates a fresh session with a generated id.
func (st *SessionStore) Get(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if e, ok := st.sessions[id]; ok {
		e.lastSeen = time.Now()
		return e.session
	}
	e := &sessionEntry{session: &Session{ID: id}, lastSeen: time.Now()}
	st.sessions[id] = e
	return e.session
}

// Drop removes a session, abandoning any in-progress collection.
func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		st.evictIdle(time.Now().Add(-sessionIdleTTL))
	}
}

// evictIdle removes sessions not touched since cutoff and reports how
// many were dropped.
func (st *SessionStore) evictIdle(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, e := range st.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}
