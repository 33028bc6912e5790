package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSolutionStoreContract runs a suite of tests to verify that a SolutionStore implementation
// adheres to the defined interface contract.
func RunSolutionStoreContract(t *testing.T, store SolutionStore) {
	ctx := context.Background()
	id := "contract-test-solution-" + time.Now().Format("20060102150405")

	newSolution := func(id string) *domain.Solution {
		return &domain.Solution{
			ID:        id,
			ProblemID: "p1",
			Key:       domain.ProblemKey("f(X, b)", "f(a, Y)"),
			Left:      "f(X, b)",
			Right:     "f(a, Y)",
			Unified:   true,
			Bindings:  map[string]string{"X": "a", "Y": "b"},
			Unifier:   "f(a, b)",
			Steps:     3,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		solution := newSolution(id)

		err := store.Save(ctx, solution)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, solution.Key, loaded.Key)
		assert.Equal(t, solution.Unified, loaded.Unified)
		assert.Equal(t, solution.Bindings, loaded.Bindings)
		assert.Equal(t, solution.Unifier, loaded.Unifier)
		assert.True(t, solution.CreatedAt.Equal(loaded.CreatedAt), "CreatedAt should survive a round trip")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		failed := newSolution(id)
		failed.Unified = false
		failed.Error = "cannot unify a/0 with b/0"
		failed.ErrorKind = domain.KindAtomComparison
		failed.Bindings = nil
		require.NoError(t, store.Save(ctx, failed))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.False(t, loaded.Unified)
		assert.Equal(t, domain.KindAtomComparison, loaded.ErrorKind)
		assert.Empty(t, loaded.Bindings)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newSolution(id))
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound, "Load after Delete should return ErrSolutionNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Delete of a missing ID should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, newSolution(id1))
		_ = store.Save(ctx, newSolution(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
