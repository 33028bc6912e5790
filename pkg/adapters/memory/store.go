package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/unify/pkg/domain"
)

// Store implements ports.SolutionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Solution
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Solution),
	}
}

// Save persists the solution in memory.
func (s *Store) Save(ctx context.Context, solution *domain.Solution) error {
	// Copy to ensure isolation, similar to serialization
	copied := solution.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[solution.ID] = copied
	return nil
}

// Load retrieves the solution from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	solution, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSolutionNotFound
	}

	// Copy on read so callers can't mutate store state through the pointer
	return solution.Clone(), nil
}

// Delete removes the solution.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored solution IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
