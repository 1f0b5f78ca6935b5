package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHistory configures the store that records every dispatch.
func WithHistory(store ports.HistoryStore) Option {
	return func(r *Runner) {
		r.History = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHooks configures the lifecycle hooks. Only OnDispatch is used by the runner.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithClock overrides the time source used for records and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides the record ID generator (random UUIDs by default).
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}
