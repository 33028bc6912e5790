package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventUnifyStart EventType = "unify_start"
	EventUnifyDone  EventType = "unify_done"
)

// Outcome summarizes how a unification ended.
type Outcome string

const (
	OutcomeUnified Outcome = "unified"
	OutcomeFailed  Outcome = "failed"
	OutcomeAborted Outcome = "aborted"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// UnifyEvent reports the start or the end of a single unification.
// Steps, Outcome, Err and Duration are only set on EventUnifyDone.
type UnifyEvent struct {
	EventBase
	Vars     int           `json:"vars"`
	Steps    int           `json:"steps,omitempty"`
	Outcome  Outcome       `json:"outcome,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnUnifyStart func(context.Context, *UnifyEvent)
	OnUnifyDone  func(context.Context, *UnifyEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnUnifyStart: chain(h.OnUnifyStart, other.OnUnifyStart),
		OnUnifyDone:  chain(h.OnUnifyDone, other.OnUnifyDone),
	}
}

func chain(a, b func(context.Context, *UnifyEvent)) func(context.Context, *UnifyEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *UnifyEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
