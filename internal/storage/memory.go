package storage

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// MemoryStore implements Store in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// Get returns the value stored under key
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
