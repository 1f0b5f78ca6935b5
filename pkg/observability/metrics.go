package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch activity as Prometheus collectors.
type Metrics struct {
	Dispatches *prometheus.CounterVec
	Unmatched  *prometheus.CounterVec
	Tasks      *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argtree_dispatch_total",
				Help: "Total number of dispatches by exit code",
			},
			[]string{"schema", "exit_code"},
		),
		Unmatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argtree_unmatched_arguments_total",
				Help: "Total number of tokens no node claimed",
			},
			[]string{"schema"},
		),
		Tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argtree_tasks_entered_total",
				Help: "Total number of task scopes entered",
			},
			[]string{"schema", "task"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "argtree_dispatch_duration_seconds",
				Help:    "Duration of the host handoff",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"schema"},
		),
	}

	for _, c := range []prometheus.Collector{m.Dispatches, m.Unmatched, m.Tasks, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTaskEnter: func(_ context.Context, e *domain.MatchEvent) {
			m.Tasks.WithLabelValues(e.Schema, e.Node).Inc()
		},
		OnUnmatched: func(_ context.Context, e *domain.UnmatchedEvent) {
			m.Unmatched.WithLabelValues(e.Schema).Inc()
		},
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) {
			m.Dispatches.WithLabelValues(e.Schema, strconv.Itoa(e.ExitCode)).Inc()
			m.Duration.WithLabelValues(e.Schema).Observe(e.Duration.Seconds())
		},
	}
}
