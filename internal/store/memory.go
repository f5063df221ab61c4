package store

import (
	"context"
	"sync"

	"github.com/i474232898/classy-weather/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory preference store. Values do not
// survive a restart; it backs tests and PREFS_BACKEND=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ weather.Preferences = (*MemoryStore)(nil)
