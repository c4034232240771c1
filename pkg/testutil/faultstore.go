// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"sync"

	"tripvault/internal/docstore"
)

// FaultStore wraps a document store and fails configured keys per operation.
// It lets tests simulate the primary write and the secondary/index write
// failing independently, which is how partial-failure reporting is verified.
type FaultStore struct {
	Inner docstore.Store

	mu         sync.Mutex
	saveErrs   map[string]error
	loadErrs   map[string]error
	deleteErrs map[string]error
}

// NewFaultStore wraps inner with no faults armed.
func NewFaultStore(inner docstore.Store) *FaultStore {
	return &FaultStore{
		Inner:      inner,
		saveErrs:   make(map[string]error),
		loadErrs:   make(map[string]error),
		deleteErrs: make(map[string]error),
	}
}

// FailSave makes Save on key return err until cleared with err == nil.
func (s *FaultStore) FailSave(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.saveErrs, key)
		return
	}
	s.saveErrs[key] = err
}

// FailLoad makes Load on key return err until cleared with err == nil.
func (s *FaultStore) FailLoad(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.loadErrs, key)
		return
	}
	s.loadErrs[key] = err
}

// FailDelete makes Delete on key return err until cleared with err == nil.
func (s *FaultStore) FailDelete(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.deleteErrs, key)
		return
	}
	s.deleteErrs[key] = err
}

func (s *FaultStore) Save(ctx context.Context, key, value string) error {
	s.mu.Lock()
	err := s.saveErrs[key]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Inner.Save(ctx, key, value)
}

func (s *FaultStore) Load(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	err := s.loadErrs[key]
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	return s.Inner.Load(ctx, key)
}

func (s *FaultStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	err := s.deleteErrs[key]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Inner.Delete(ctx, key)
}
