package console

import (
	"context"
	"sync"
)

// SessionStorageKey is the fixed key the session is persisted under.
const SessionStorageKey = "denstack-session"

// InMemorySessionStorage keeps the session in process memory.
type InMemorySessionStorage struct {
	mu      sync.RWMutex
	session *Session
}

// NewInMemorySessionStorage builds an empty storage.
func NewInMemorySessionStorage() *InMemorySessionStorage {
	return &InMemorySessionStorage{}
}

func (s *InMemorySessionStorage) Load(context.Context) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, ErrNoSession
	}
	return s.session.clone(), nil
}

func (s *InMemorySessionStorage) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := session.clone()
	s.session = &stored
	return nil
}

func (s *InMemorySessionStorage) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
