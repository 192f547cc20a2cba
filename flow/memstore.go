package flow

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore is an in-process SessionStore with TTL expiry.
// Expired sessions are dropped lazily on access; reading one behaves
// as if the session never existed.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
	ttl      time.Duration
}

// NewMemorySessionStore creates a memory store. A non-positive ttl
// disables expiry.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*SessionState),
		ttl:      ttl,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*SessionState, error) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if s.expired(state) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}

	return state, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, state *SessionState) error {
	s.mu.Lock()
	s.sessions[state.SessionID] = state
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// PurgeExpired drops every expired session and returns how many were removed.
func (s *MemorySessionStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, state := range s.sessions {
		if s.expired(state) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemorySessionStore) expired(state *SessionState) bool {
	return s.ttl > 0 && time.Since(state.UpdatedAt) > s.ttl
}
