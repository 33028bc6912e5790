package ports

import (
	"context"

	"github.com/aretw0/unify/pkg/domain"
)

// ProblemLoader defines how drivers retrieve problems.
// This allows the problem source (Loam, YAML file, Memory) to be decoupled.
type ProblemLoader interface {
	// GetProblem retrieves a problem by ID.
	// Returns domain.ErrProblemNotFound if it does not exist.
	GetProblem(ctx context.Context, id string) (*domain.Problem, error)

	// ListProblems returns the IDs of all problems, sorted.
	ListProblems(ctx context.Context) ([]string, error)
}
