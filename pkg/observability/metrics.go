package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/unify/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects unification counters and histograms.
type Metrics struct {
	registry *prometheus.Registry

	unifications *prometheus.CounterVec
	steps        prometheus.Histogram
	duration     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		unifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unify_unifications_total",
				Help: "Total number of unifications by outcome",
			},
			[]string{"outcome"},
		),
		steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "unify_unification_steps",
				Help:    "Worklist steps per unification",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "unify_unification_duration_seconds",
				Help: "Duration of unifications",
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "unify_unifications_in_flight",
				Help: "Unifications currently running",
			},
		),
	}
	m.registry.MustRegister(m.unifications, m.steps, m.duration, m.inFlight)
	return m
}

// Registry exposes the registry for additional collectors and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record every unification.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUnifyStart: func(ctx context.Context, e *domain.UnifyEvent) {
			m.inFlight.Inc()
		},
		OnUnifyDone: func(ctx context.Context, e *domain.UnifyEvent) {
			m.inFlight.Dec()
			outcome := string(e.Outcome)
			m.unifications.WithLabelValues(outcome).Inc()
			m.duration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
			m.steps.Observe(float64(e.Steps))
		},
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
