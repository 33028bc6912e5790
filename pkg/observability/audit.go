package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/unify/pkg/domain"
)

// AuditHooks logs the end of every unification at info level.
// Failed and aborted unifications carry the error.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUnifyDone: func(ctx context.Context, e *domain.UnifyEvent) {
			attrs := []any{
				"outcome", e.Outcome,
				"vars", e.Vars,
				"steps", e.Steps,
				"duration", e.Duration,
			}
			if e.Err != nil {
				attrs = append(attrs, "err", e.Err, "kind", domain.ErrorKind(e.Err))
			}
			logger.Info("unify_done", attrs...)
		},
	}
}
