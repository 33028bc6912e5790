package middleware_test

import (
	"context"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It counts loads so cache hits can be observed.
type MockStore struct {
	data  map[string]*domain.Solution
	loads int
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Solution),
	}
}

func (s *MockStore) Save(ctx context.Context, solution *domain.Solution) error {
	s.data[solution.ID] = solution
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (*domain.Solution, error) {
	s.loads++
	solution, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSolutionNotFound
	}
	return solution, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.SolutionStore = (*MockStore)(nil)
