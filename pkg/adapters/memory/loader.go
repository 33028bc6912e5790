package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/unify/pkg/domain"
)

// Loader implements ports.ProblemLoader over a fixed set of problems.
type Loader struct {
	problems map[string]domain.Problem
}

// NewLoader creates a loader from problems. IDs must be present and unique.
func NewLoader(problems ...domain.Problem) (*Loader, error) {
	data := make(map[string]domain.Problem, len(problems))
	for _, p := range problems {
		if p.ID == "" {
			return nil, fmt.Errorf("problem missing ID (left %q)", p.Left)
		}
		if _, dup := data[p.ID]; dup {
			return nil, fmt.Errorf("duplicate problem ID %q", p.ID)
		}
		data[p.ID] = clone(p)
	}
	return &Loader{problems: data}, nil
}

// GetProblem returns a copy of the problem with the given ID.
func (l *Loader) GetProblem(ctx context.Context, id string) (*domain.Problem, error) {
	p, ok := l.problems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProblemNotFound, id)
	}
	c := clone(p)
	return &c, nil
}

// ListProblems returns all problem IDs.
func (l *Loader) ListProblems(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.problems))
	for k := range l.problems {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func clone(p domain.Problem) domain.Problem {
	if p.Language != nil {
		p.Language = append([]string(nil), p.Language...)
	}
	return p
}
