package refreshtoken

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopgate/pkg/platform/sentinel"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// InMemoryStore keeps refresh tokens in memory for tests/dev. It honors the
// same TTL and overwrite-wins semantics as the Redis store.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewInMemoryStore constructs an empty in-memory credential store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Put(_ context.Context, userID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = entry{token: refreshToken, expiresAt: s.now().Add(TTL)}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[userID]
	if !ok || s.now().After(e.expiresAt) {
		return "", fmt.Errorf("refresh token not tracked: %w", sentinel.ErrNotFound)
	}
	return e.token, nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.entries[userID]
	delete(s.entries, userID)
	return existed, nil
}
