package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions owns one Store per session id. Stores are never shared between ids.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*session), now: time.Now}
}

// Open starts a new session with an empty store.
func (s *Sessions) Open() (string, *Store) {
	id := uuid.NewString()
	store := NewStore()

	s.mu.Lock()
	s.sessions[id] = &session{store: store, lastSeen: s.now()}
	s.mu.Unlock()

	return id, store
}

// Get returns the store of a live session and marks it as active.
func (s *Sessions) Get(id string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.store, true
}

// End discards a session and its history. It reports whether the session existed.
func (s *Sessions) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Sweep ends every session idle for longer than maxIdle and returns how many were ended.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
