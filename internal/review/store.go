package review

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps review sessions in memory. Nothing is persisted across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store that forgets sessions idle for longer than ttl
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts an empty session with a fresh UUID
func (st *Store) Create() *Session {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	s := newSession(id.String(), st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session for id, if it exists
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for id or a new one when id is unknown
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were dropped
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}
