package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory circuit store for development and testing.
type MemoryStore struct {
	mu       sync.RWMutex
	circuits map[string]*Circuit
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		circuits: make(map[string]*Circuit),
	}
}

// Get retrieves a circuit by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Circuit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.circuits[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers can't mutate stored state.
	out := *c
	return &out, nil
}

// List returns all circuits, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Circuit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Circuit, 0, len(s.circuits))
	for _, c := range s.circuits {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Put stores a circuit.
func (s *MemoryStore) Put(ctx context.Context, circuit *Circuit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *circuit
	s.circuits[circuit.ID] = &copied
	return nil
}

// Delete removes a circuit.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.circuits[id]; !ok {
		return ErrNotFound
	}
	delete(s.circuits, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
