package memory

import (
	"context"
	"sync"

	"pocketledger/internal/storage"
)

// Store is a process-local storage.Slot. Values are copied on the way in and
// out so callers never share buffers with the store.
type Store struct {
	mu    sync.Mutex
	slots map[string][]byte
}

var _ storage.Slot = (*Store)(nil)

func New() *Store {
	return &Store{slots: map[string][]byte{}}
}

// NewWithSlots returns a store pre-populated with the given values.
func NewWithSlots(seed map[string]string) *Store {
	s := New()
	for k, v := range seed {
		s.slots[k] = []byte(v)
	}
	return s
}

// Read returns the stored value or storage.ErrNotFound.
func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Write replaces the value stored under key.
func (s *Store) Write(_ context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

// Keys lists the keys currently held.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.slots))
	for k := range s.slots {
		out = append(out, k)
	}
	return out
}
