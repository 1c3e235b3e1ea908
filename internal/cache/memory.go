package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	payload  []byte
	insertAt time.Time
	ttl      time.Duration
}

func (e memoryEntry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.insertAt) >= e.ttl
}

// MemoryStore is an in-process Store with per-key TTL. It backs the
// client-side cache layer and tests. Entries are serialized through the same
// JSON codec as the Redis store so cached values never share memory with
// callers. get/set/invalidate are serialized; single-consumer usage needs no
// further coordination.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: b, insertAt: s.now(), ttl: ttl}
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// Len returns the number of live entries, counting out expired ones.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, entry := range s.entries {
		if !entry.expired(now) {
			n++
		}
	}
	return n
}
