package unify

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/unify/internal/runtime"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/subst"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and is safe for concurrent use.
type Engine struct {
	runtime     *runtime.Engine
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithoutOccursCheck lets a variable be bound to a term that contains it.
// Resolving such a binding reports domain.ErrOccursCheck.
func WithoutOccursCheck() Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithoutOccursCheck())
	}
}

// WithMaxSteps aborts unifications that take more than n worklist steps
// with domain.ErrStepLimit. Zero means unlimited.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the runtime never sees nil.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	eng.runtime = runtime.NewEngine(runtimeOpts...)
	return eng
}

// Result is a successful unification.
type Result = runtime.Result

// Unify computes the most general unifier of a and b. A nil ctx is treated as
// context.Background.
func (e *Engine) Unify(ctx context.Context, a, b domain.Term) (*Result, error) {
	return e.runtime.Unify(ctx, a, b)
}

// OccursCheck reports whether the engine runs the occurs check.
func (e *Engine) OccursCheck() bool {
	return e.runtime.OccursCheck()
}

// Unify computes the most general unifier of a and b with the default settings.
// Variables are numbered 1..max(MaxVar(a), MaxVar(b)); in the returned substitution,
// variable ?N is cell N-1. On failure the error wraps domain.ErrAtomComparison or
// domain.ErrOccursCheck and no substitution is returned. A variable with a
// non-positive index is reported as domain.ErrValidation.
func Unify(a, b domain.Term) (*subst.Substitution, error) {
	return runtime.Unify(a, b)
}

// Resolve applies s to t, producing a freshly allocated term.
// Unbound variables come back as the canonical variable of their class.
func Resolve(s *subst.Substitution, t domain.Term) (domain.Term, error) {
	return runtime.Resolve(s, t)
}

// Bindings resolves ?1..?n through s. Element i is the term for ?(i+1).
func Bindings(s *subst.Substitution, n int) ([]domain.Term, error) {
	return runtime.Bindings(s, n)
}
