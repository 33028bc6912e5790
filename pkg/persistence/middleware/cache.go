package middleware

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
	lru "github.com/hashicorp/golang-lru"
)

type cacheMiddleware struct {
	next  ports.SolutionStore
	cache *lru.Cache

	// gen is bumped by every write. A load only fills the cache when no write
	// landed while it was reading from next.
	mu  sync.Mutex
	gen uint64
}

// NewCacheMiddleware keeps the size most recently used solutions in memory.
// Loads are served from the cache; saves and deletes write through.
// Expiry in the wrapped store (a Redis TTL) is not seen by cached entries.
func NewCacheMiddleware(size int) (Middleware, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	return func(next ports.SolutionStore) ports.SolutionStore {
		// lru.New only fails on a non-positive size, checked above.
		cache, _ := lru.New(size)
		return &cacheMiddleware{next: next, cache: cache}
	}, nil
}

func (m *cacheMiddleware) Save(ctx context.Context, solution *domain.Solution) error {
	err := m.next.Save(ctx, solution)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if err != nil {
		m.cache.Remove(solution.ID)
		return err
	}
	m.cache.Add(solution.ID, solution.Clone())
	return nil
}

func (m *cacheMiddleware) Load(ctx context.Context, id string) (*domain.Solution, error) {
	if v, ok := m.cache.Get(id); ok {
		return v.(*domain.Solution).Clone(), nil
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	solution, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.gen == gen {
		m.cache.Add(id, solution.Clone())
	}
	m.mu.Unlock()
	return solution, nil
}

func (m *cacheMiddleware) Delete(ctx context.Context, id string) error {
	err := m.next.Delete(ctx, id)

	m.mu.Lock()
	m.gen++
	m.cache.Remove(id)
	m.mu.Unlock()
	return err
}

func (m *cacheMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
