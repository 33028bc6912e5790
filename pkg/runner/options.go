package runner

import (
	"log/slog"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the SolutionStore solutions are saved to.
// Without a store solutions are not persisted.
func WithStore(store ports.SolutionStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithEngine configures the unification engine.
func WithEngine(engine *unify.Engine) Option {
	return func(r *Runner) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithSanitizer makes Solve reject or clean term text through SanitizeInput.
// Drivers that read untrusted input (HTTP, MCP, stdin) enable it.
func WithSanitizer() Option {
	return func(r *Runner) {
		r.sanitize = true
	}
}
