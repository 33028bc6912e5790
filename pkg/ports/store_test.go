package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
)

// MockStore is an in-memory implementation of SolutionStore for testing purposes.
type MockStore struct {
	mu   sync.Mutex
	data map[string]*domain.Solution
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*domain.Solution)}
}

func (m *MockStore) Save(ctx context.Context, s *domain.Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = s.Clone()
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Solution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, domain.ErrSolutionNotFound
	}
	return s.Clone(), nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestSolutionStore_Contract(t *testing.T) {
	ports.RunSolutionStoreContract(t, NewMockStore())
}
