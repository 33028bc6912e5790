package ports

import (
	"context"

	"github.com/aretw0/unify/pkg/domain"
)

// Solver turns a problem into a solution.
// A problem whose sides do not unify is not an error: the solution reports it.
// Errors are reserved for malformed input and infrastructure failures.
type Solver interface {
	Solve(ctx context.Context, problem *domain.Problem) (*domain.Solution, error)
}
