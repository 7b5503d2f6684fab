package session

import (
	"context"
	"sync"

	"tamirciBul/internal/models"
)

// Store persists the client's single session. Implementations may keep it in
// memory, in Redis, or anywhere else; callers only see this interface.
type Store interface {
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *models.Session
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return models.Session{}, models.ErrNoSession
	}
	return *s.sess, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

// TokenFromStore adapts a Store to the TokenSource interfaces the directory
// client and the notification stream expect. Expired or missing sessions
// yield an empty token, which means anonymous.
type TokenFromStore struct {
	Store Store
}

func (t TokenFromStore) Token(ctx context.Context) string {
	sess, err := t.Store.Get(ctx)
	if err != nil || sess.Expired() {
		return ""
	}
	return sess.Token
}
