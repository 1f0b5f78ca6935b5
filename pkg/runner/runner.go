package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/ports"
	"github.com/google/uuid"
)

// Exit codes reported in Outcome.
const (
	ExitOK      = 0
	ExitFailure = 1 // structural errors, or a failing implementation or handler
	ExitVersion = 2 // the runtime version gate rejected the process
)

// Outcome summarises what the runner did with a dispatch result.
type Outcome struct {
	ExitCode int `json:"exit_code"`
	// Handled is true when an implementation or at least one exception handler ran.
	Handled bool `json:"handled"`
}

// Runner hands a matched result to its callbacks.
// On success it invokes the adopted implementation; on structural errors it consults the
// exception handlers newest first until one returns false.
type Runner struct {
	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// History receives a record of every dispatch.
	// If nil, nothing is recorded.
	History ports.HistoryStore

	// Hooks.OnDispatch is fired after every dispatch.
	Hooks domain.LifecycleHooks

	now   func() time.Time
	newID func() string
}

// NewRunner creates a Runner with a discard logger and no history.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Dispatch invokes the implementation or folds the exception handlers of res.
// The returned error is the one raised by a callback, if any; structural errors alone
// only set ExitFailure.
func (r *Runner) Dispatch(ctx context.Context, res *domain.Result) (Outcome, error) {
	start := r.now()

	var (
		out Outcome
		err error
	)
	if res.Failed() {
		out, err = r.fold(ctx, res)
	} else {
		out, err = r.invoke(ctx, res)
	}

	r.finish(ctx, res, out, start)
	return out, err
}

// Reject records a dispatch refused before matching (e.g. by the version gate).
func (r *Runner) Reject(ctx context.Context, res *domain.Result, code int) Outcome {
	out := Outcome{ExitCode: code}
	r.finish(ctx, res, out, r.now())
	return out
}

// Record stores res and fires OnDispatch without invoking any callback.
// The exit code reflects structural errors only. Remote matching uses it.
func (r *Runner) Record(ctx context.Context, res *domain.Result) Outcome {
	out := Outcome{ExitCode: ExitOK}
	if res.Failed() {
		out.ExitCode = ExitFailure
	}
	r.finish(ctx, res, out, r.now())
	return out
}

func (r *Runner) invoke(ctx context.Context, res *domain.Result) (Outcome, error) {
	if res.Execute == nil {
		r.Logger.Debug("no implementation to invoke", "tasks", res.Tasks)
		return Outcome{ExitCode: ExitOK}, nil
	}

	if err := res.Execute(ctx, res); err != nil {
		r.Logger.Error("implementation failed", "task", res.Task(), "error", err)
		return Outcome{ExitCode: ExitFailure, Handled: true}, fmt.Errorf("task %q failed: %w", res.Task(), err)
	}
	return Outcome{ExitCode: ExitOK, Handled: true}, nil
}

func (r *Runner) fold(ctx context.Context, res *domain.Result) (Outcome, error) {
	out := Outcome{ExitCode: ExitFailure}

	for i := len(res.Exception) - 1; i >= 0; i-- {
		h := res.Exception[i]
		if h == nil {
			continue
		}
		out.Handled = true

		next, err := h(ctx, res)
		if err != nil {
			r.Logger.Error("exception handler failed", "handler", i, "error", err)
			return out, fmt.Errorf("exception handler failed: %w", err)
		}
		if !next {
			r.Logger.Debug("exception handled", "handler", i)
			break
		}
	}

	if !out.Handled {
		r.Logger.Debug("structural errors without handlers", "errors", len(res.Errors))
	}
	return out, nil
}

func (r *Runner) finish(ctx context.Context, res *domain.Result, out Outcome, start time.Time) {
	r.Logger.Debug("dispatch finished",
		"tasks", res.Tasks,
		"errors", len(res.Errors),
		"exit_code", out.ExitCode,
	)

	if r.History != nil {
		rec := &domain.Record{
			ID:       r.newID(),
			Schema:   res.Schema,
			Argv:     SanitizeArgv(res.Argv),
			Tasks:    res.Tasks,
			Args:     res.Args,
			Errors:   sanitizeErrors(res.Errors),
			ExitCode: out.ExitCode,
			At:       start,
		}
		if err := r.History.Append(ctx, rec); err != nil {
			r.Logger.Warn("failed to record dispatch", "id", rec.ID, "error", err)
		}
	}

	if r.Hooks.OnDispatch != nil {
		tasks := res.Tasks
		if tasks == nil {
			tasks = []string{}
		}
		r.Hooks.OnDispatch(ctx, &domain.DispatchEvent{
			EventBase: domain.EventBase{
				Timestamp: r.now(),
				Type:      domain.EventDispatch,
				Schema:    res.Schema,
			},
			Tasks:    tasks,
			Errors:   len(res.Errors),
			ExitCode: out.ExitCode,
			Duration: r.now().Sub(start),
		})
	}
}

func sanitizeErrors(errs []domain.ArgumentError) []domain.ArgumentError {
	if errs == nil {
		return nil
	}
	out := make([]domain.ArgumentError, len(errs))
	for i, e := range errs {
		out[i] = domain.ArgumentError{Index: e.Index, Argument: SanitizeToken(e.Argument)}
	}
	return out
}
