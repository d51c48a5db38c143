package memory

import (
	"context"
	"sync"
)

// Store implements ports.BlobStore in memory.
// Safe for concurrent use.
type Store struct {
	data []byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with a blob.
func NewStore(seed ...byte) *Store {
	s := &Store{}
	if len(seed) > 0 {
		s.data = append([]byte(nil), seed...)
	}
	return s
}

// Get returns a copy of the stored blob, or nil when empty.
func (s *Store) Get(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, nil
	}
	// Copy on read so callers can't mutate the store through the slice
	return append([]byte(nil), s.data...), nil
}

// Put replaces the stored blob.
func (s *Store) Put(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte{}, data...)
	return nil
}
