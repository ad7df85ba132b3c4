package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vetform/pkg/platform/sentinel"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// InMemoryStore keeps drafts in process memory for tests and single-node dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewInMemoryStore constructs an empty in-memory draft store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("draft key %s: %w", key, sentinel.ErrNotFound)
	}
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(s.now()) {
		return "", fmt.Errorf("draft key %s: %w", key, sentinel.ErrNotFound)
	}
	return entry.value, nil
}

func (s *InMemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
