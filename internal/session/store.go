package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session pairs one state value with its lock. Each session has exactly one
// logical actor, but HTTP delivery is concurrent, so the lock serializes the
// (rare) overlapping requests for the same session.
type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	updatedAt time.Time
}

// Store keeps sessions in memory only. Nothing survives a restart; the TTL
// sweep is housekeeping for abandoned sessions, not persistence.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		updatedAt: time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	return sess, ok
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		idle := sess.updatedAt.Before(cutoff)
		sess.mu.Unlock()

		if idle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
