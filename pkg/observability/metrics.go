package observability

import (
	"context"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lsys"

// Metrics records expansion runs. Labels are keyed by grammar name.
type Metrics struct {
	expansions *prometheus.CounterVec
	symbols    *prometheus.CounterVec
	rewrites   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	active     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "expansions_total",
				Help:      "Total number of finished expansion runs",
			},
			[]string{"grammar", "status"},
		),
		symbols: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "symbols_emitted_total",
				Help:      "Total number of symbols delivered to consumers",
			},
			[]string{"grammar"},
		),
		rewrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_lookups_total",
				Help:      "Total number of rule replacements installed",
			},
			[]string{"grammar"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "expansion_duration_seconds",
				Help:      "Duration of expansion runs, from open to close",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"grammar"},
		),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_expansions",
			Help:      "Number of expansion runs currently open",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.expansions, m.symbols, m.rewrites, m.duration, m.active)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnExpansionStart: func(ctx context.Context, e *domain.ExpansionEvent) {
			m.active.Inc()
		},
		OnExpansionEnd: func(ctx context.Context, e *domain.ExpansionEvent) {
			m.active.Dec()

			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.expansions.WithLabelValues(e.Grammar, status).Inc()
			m.symbols.WithLabelValues(e.Grammar).Add(float64(e.Symbols))
			m.rewrites.WithLabelValues(e.Grammar).Add(float64(e.Lookups))
			m.duration.WithLabelValues(e.Grammar).Observe(e.Duration.Seconds())
		},
	}
}
