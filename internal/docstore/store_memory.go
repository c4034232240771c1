package docstore

import (
	"context"
	"fmt"
	"sync"

	"tripvault/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map for tests and single-process
// development runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewInMemoryStore constructs an empty in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]string)}
}

func (s *InMemoryStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = value
	return nil
}

func (s *InMemoryStore) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.docs[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("document %s: %w", key, sentinel.ErrNotFound)
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

// Len reports the number of stored documents, indexes included.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
