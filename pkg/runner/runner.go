package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/language"
	"github.com/aretw0/unify/pkg/ports"
	"github.com/aretw0/unify/pkg/syntax"
	"github.com/google/uuid"
)

// Runner solves problems with a unification engine and optionally persists the results.
// It is safe for concurrent use if its store is.
type Runner struct {
	// Store is the persistence adapter for solutions.
	// If nil, solutions are not saved.
	Store ports.SolutionStore

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	engine   *unify.Engine
	sanitize bool
	now      func() time.Time
}

var _ ports.Solver = (*Runner)(nil)

// NewRunner creates a Runner. Without WithEngine it uses unify.New().
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.engine = unify.New(unify.WithLogger(r.Logger))
	}
	return r
}

// Engine returns the engine the runner unifies with.
func (r *Runner) Engine() *unify.Engine {
	return r.engine
}

// Solve unifies the two sides of p.
//
// A pair that does not unify is not an error: the returned solution has Unified set to
// false and reports why. Errors are returned for malformed input (domain.ErrSyntax,
// domain.ErrValidation), an exhausted step budget, cancellation and store failures.
func (r *Runner) Solve(ctx context.Context, p *domain.Problem) (*domain.Solution, error) {
	if r.sanitize {
		clean := *p
		var err error
		if clean.Left, err = SanitizeInput(p.Left); err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		if clean.Right, err = SanitizeInput(p.Right); err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		p = &clean
	}

	left, right, scope, err := syntax.ParsePair(p.Left, p.Right)
	if err != nil {
		return nil, err
	}

	if len(p.Language) > 0 {
		lang, err := language.Parse(p.Language...)
		if err != nil {
			return nil, fmt.Errorf("problem %q language: %w", p.ID, err)
		}
		if err := lang.ValidatePair(left, right); err != nil {
			return nil, err
		}
	}

	solution := &domain.Solution{
		ID:        uuid.NewString(),
		ProblemID: p.ID,
		Key:       p.Key(),
		Left:      p.Left,
		Right:     p.Right,
		CreatedAt: r.now().UTC(),
	}

	res, err := r.engine.Unify(ctx, left, right)
	switch {
	case err == nil:
		solution.Steps = res.Steps
		if err := describe(solution, res, left, right, scope); err != nil {
			fail(solution, err)
		}
	case domain.IsUnificationFailure(err):
		fail(solution, err)
	default:
		return nil, err
	}

	r.Logger.Debug("problem solved",
		"problem", p.ID,
		"key", solution.Key,
		"nodes", domain.Size(left)+domain.Size(right),
		"unified", solution.Unified,
		"steps", solution.Steps)

	if r.Store != nil {
		if err := r.Store.Save(ctx, solution); err != nil {
			return nil, fmt.Errorf("failed to save solution: %w", err)
		}
	}
	return solution, nil
}

// describe fills in the unifier and the bindings of every variable of both sides.
// It fails only when the substitution is cyclic, which the occurs check normally prevents.
func describe(s *domain.Solution, res *unify.Result, left, right domain.Term, scope *syntax.Scope) error {
	unifier, err := unify.Resolve(res.Subst, left)
	if err != nil {
		return err
	}

	bindings := make(map[string]string)
	for _, side := range []domain.Term{left, right} {
		for _, i := range domain.Vars(side) {
			v := domain.NewVar(i)
			name := syntax.PrintWith(v, scope)
			if _, ok := bindings[name]; ok {
				continue
			}
			t, err := unify.Resolve(res.Subst, v)
			if err != nil {
				return err
			}
			bindings[name] = syntax.PrintWith(t, scope)
		}
	}

	s.Unified = true
	s.Unifier = syntax.PrintWith(unifier, scope)
	if len(bindings) > 0 {
		s.Bindings = bindings
	}
	return nil
}

func fail(s *domain.Solution, err error) {
	s.Unified = false
	s.Unifier = ""
	s.Bindings = nil
	s.Error = err.Error()
	s.ErrorKind = domain.ErrorKind(err)
}

// Check solves every problem of loader and compares each outcome with its expectation.
// Problems that cannot be solved (bad syntax, unknown symbols) are reported as failed
// results. Check stops early only when ctx is done or the loader fails.
func (r *Runner) Check(ctx context.Context, loader ports.ProblemLoader) (*Report, error) {
	ids, err := loader.ListProblems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	start := r.now()
	report := &Report{Results: make([]CheckResult, 0, len(ids))}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := loader.GetProblem(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load problem %q: %w", id, err)
		}

		result := CheckResult{
			ProblemID:   p.ID,
			Description: p.Description,
			Left:        p.Left,
			Right:       p.Right,
			Expect:      p.Expect,
		}

		solution, err := r.Solve(ctx, p)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			result.Error = err.Error()
			result.ErrorKind = domain.ErrorKind(err)
		} else {
			result.Solution = solution
			result.Passed = meets(p.Expect, solution)
		}

		r.Logger.Debug("problem checked", "problem", id, "passed", result.Passed)
		report.Results = append(report.Results, result)
	}
	report.Duration = r.now().Sub(start)
	return report, nil
}

func meets(expect domain.Expectation, s *domain.Solution) bool {
	switch expect {
	case domain.ExpectUnify:
		return s.Unified
	case domain.ExpectFail:
		return !s.Unified
	default:
		return true
	}
}
