package out

import (
	"context"
	"sync"
)

// MemoryFlagStore is a process-local FlagStore. It counts writes per key so
// tests can assert how often a flag was persisted.
type MemoryFlagStore struct {
	mu     sync.Mutex
	flags  map[string]bool
	writes map[string]int
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{flags: map[string]bool{}, writes: map[string]int{}}
}

func (s *MemoryFlagStore) ReadFlag(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[key], nil
}

func (s *MemoryFlagStore) WriteFlag(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
	s.writes[key]++
	return nil
}

func (s *MemoryFlagStore) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}
