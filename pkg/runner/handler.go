package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/unify/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user in Run.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next problem. It returns io.EOF when the input is exhausted
	// and a nil problem for input that should be skipped (blank lines).
	Input(ctx context.Context) (*domain.Problem, error)

	// Output presents a solution, or the error that prevented one.
	Output(ctx context.Context, solution *domain.Solution, err error) error
}

// ParseLine reads a "left = right" line into a problem.
func ParseLine(line string) (*domain.Problem, error) {
	left, right, ok := strings.Cut(line, "=")
	if !ok {
		return nil, fmt.Errorf("%w: expected \"left = right\"", domain.ErrSyntax)
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" {
		return nil, fmt.Errorf("%w: both sides of '=' are required", domain.ErrSyntax)
	}
	return &domain.Problem{Left: left, Right: right}, nil
}
