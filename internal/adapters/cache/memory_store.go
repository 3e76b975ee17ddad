package cache

import (
	"maps"
	"sync"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
)

// MemoryStore is a KeyValueStore kept in memory. Sessions are exclusive.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Open locks the store until the session is closed.
func (s *MemoryStore) Open() (ports.Session, error) {
	s.mu.Lock()
	return &memorySession{store: s}, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a copy of the stored entries.
func (s *MemoryStore) Snapshot() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.entries)
}

type memorySession struct {
	store  *MemoryStore
	closed bool
}

func (s *memorySession) Get(key string) ([]byte, bool, error) {
	if s.closed {
		return nil, false, domain.ErrCacheSessionClosed
	}
	v, ok := s.store.entries[key]
	return v, ok, nil
}

func (s *memorySession) Put(key string, value []byte) error {
	if s.closed {
		return domain.ErrCacheSessionClosed
	}
	s.store.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *memorySession) Delete(key string) error {
	if s.closed {
		return domain.ErrCacheSessionClosed
	}
	delete(s.store.entries, key)
	return nil
}

func (s *memorySession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.store.mu.Unlock()
	return nil
}
