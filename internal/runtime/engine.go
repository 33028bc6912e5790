package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
)

// ctxCheckInterval is how many worklist steps run between context checks.
const ctxCheckInterval = 1024

// Engine runs unifications with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	occursCheck bool
	maxSteps    int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithoutOccursCheck disables the occurs check.
// A variable may then be bound to a term containing itself, and Resolve on such
// a substitution reports domain.ErrOccursCheck.
func WithoutOccursCheck() EngineOption {
	return func(e *Engine) {
		e.occursCheck = false
	}
}

// WithMaxSteps caps the number of worklist steps. Zero means unlimited.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// NewEngine creates an engine. The occurs check is on unless disabled.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		occursCheck: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OccursCheck reports whether the engine runs the occurs check.
func (e *Engine) OccursCheck() bool {
	return e.occursCheck
}

// Result is a successful unification.
type Result struct {
	Subst *subst.Substitution
	// Steps is the number of term pairs taken off the worklist.
	Steps int
}

// Unify computes the most general unifier of a and b.
// On failure it returns a nil result; no partial substitution is exposed.
// A nil ctx is treated as context.Background. Terms holding a variable with a
// non-positive index are rejected with domain.ErrValidation.
func (e *Engine) Unify(ctx context.Context, a, b domain.Term) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := domain.CheckVars(a); err != nil {
		return nil, err
	}
	if err := domain.CheckVars(b); err != nil {
		return nil, err
	}
	numVars := max(domain.MaxVar(a), domain.MaxVar(b))

	start := time.Now()
	if e.hooks.OnUnifyStart != nil {
		e.hooks.OnUnifyStart(ctx, &domain.UnifyEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventUnifyStart},
			Vars:      numVars,
		})
	}

	u := &unifier{
		ctx:         ctx,
		s:           subst.New(numVars),
		occursCheck: e.occursCheck,
		maxSteps:    e.maxSteps,
	}
	err := u.run(a, b)

	outcome := domain.OutcomeUnified
	switch {
	case err == nil:
	case domain.IsUnificationFailure(err):
		outcome = domain.OutcomeFailed
	default:
		outcome = domain.OutcomeAborted
	}

	e.logger.DebugContext(ctx, "unification finished",
		"vars", numVars, "steps", u.steps, "outcome", outcome, "error", err)

	if e.hooks.OnUnifyDone != nil {
		e.hooks.OnUnifyDone(ctx, &domain.UnifyEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventUnifyDone},
			Vars:      numVars,
			Steps:     u.steps,
			Outcome:   outcome,
			Err:       err,
			Duration:  time.Since(start),
		})
	}

	if err != nil {
		return nil, err
	}
	return &Result{Subst: u.s, Steps: u.steps}, nil
}

// Unify runs a with b on a default engine, without a context.
func Unify(a, b domain.Term) (*subst.Substitution, error) {
	res, err := NewEngine().Unify(context.Background(), a, b)
	if err != nil {
		return nil, err
	}
	return res.Subst, nil
}

