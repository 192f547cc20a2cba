package flow

import "context"

// SessionRepository defines the database operations for session state.
type SessionRepository interface {
	SaveSession(ctx context.Context, state *SessionState) error
	LoadSession(ctx context.Context, sessionID string) (*SessionState, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// MongoSessionStore adapts the database repository to the SessionStore interface.
type MongoSessionStore struct {
	repo SessionRepository
}

// NewMongoSessionStore creates a new MongoDB session store.
func NewMongoSessionStore(repo SessionRepository) *MongoSessionStore {
	return &MongoSessionStore{repo: repo}
}

func (s *MongoSessionStore) Get(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.repo.LoadSession(ctx, sessionID)
}

func (s *MongoSessionStore) Put(ctx context.Context, state *SessionState) error {
	return s.repo.SaveSession(ctx, state)
}

func (s *MongoSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}
