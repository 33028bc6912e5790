package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/ports"
)

// ProblemLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.ProblemLoader.
func ProblemLoaderContractTest(t *testing.T, loader ports.ProblemLoader, setupData map[string]domain.Problem) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetProblem (Success)
	t.Run("GetProblem_Success", func(t *testing.T) {
		for id, expected := range setupData {
			p, err := loader.GetProblem(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting problem %s: %v", id, err)
			}
			if p.ID != id {
				t.Errorf("ID mismatch: got %q, want %q", p.ID, id)
			}
			if p.Left != expected.Left || p.Right != expected.Right {
				t.Errorf("sides mismatch for %s. got %q = %q, want %q = %q", id, p.Left, p.Right, expected.Left, expected.Right)
			}
			if p.Expect != expected.Expect {
				t.Errorf("expectation mismatch for %s. got %q, want %q", id, p.Expect, expected.Expect)
			}
		}
	})

	// 2. Test GetProblem (NotFound)
	t.Run("GetProblem_NotFound", func(t *testing.T) {
		_, err := loader.GetProblem(ctx, "non-existent-problem")
		if !errors.Is(err, domain.ErrProblemNotFound) {
			t.Errorf("expected ErrProblemNotFound, got %v", err)
		}
	})

	// 3. Test ListProblems
	t.Run("ListProblems", func(t *testing.T) {
		ids, err := loader.ListProblems(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing problems: %v", err)
		}

		if len(ids) != len(setupData) {
			t.Errorf("expected %d problems, got %d", len(setupData), len(ids))
		}

		for i := 1; i < len(ids); i++ {
			if ids[i-1] >= ids[i] {
				t.Errorf("ids not sorted: %v", ids)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range setupData {
			if !lookup[id] {
				t.Errorf("problem %s missing from list", id)
			}
		}
	})

	// 4. Returned problems are copies
	t.Run("GetProblem_Isolation", func(t *testing.T) {
		for id := range setupData {
			p, err := loader.GetProblem(ctx, id)
			if err != nil {
				t.Fatal(err)
			}
			p.Left = "mutated"
			again, err := loader.GetProblem(ctx, id)
			if err != nil {
				t.Fatal(err)
			}
			if again.Left == "mutated" {
				t.Errorf("loader returned shared problem %s", id)
			}
			break
		}
	})
}
