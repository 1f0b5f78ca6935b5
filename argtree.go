package argtree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/argtree/internal/runtime"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/ports"
	"github.com/aretw0/argtree/pkg/runner"
)

// Executor is the high-level entry point for the argtree library.
// It matches an argument vector against a schema and hands the result to the schema's
// implementation or exception handlers.
type Executor struct {
	schema     *domain.Schema
	extensions []domain.Extension

	exit            bool
	exitFunc        func(int)
	minVersion      string
	stopOnUnmatched bool
	hooks           domain.LifecycleHooks
	history         ports.HistoryStore
	logger          *slog.Logger
}

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithExit terminates the process with the dispatch exit code once Execute finishes.
func WithExit(exit bool) Option {
	return func(e *Executor) {
		e.exit = exit
	}
}

// WithExitFunc replaces os.Exit for WithExit. Intended for tests.
func WithExitFunc(fn func(int)) Option {
	return func(e *Executor) {
		if fn != nil {
			e.exitFunc = fn
		}
	}
}

// WithMinVersion rejects dispatches when the Go runtime does not satisfy the semver
// constraint (e.g. ">= 1.22").
func WithMinVersion(constraint string) Option {
	return func(e *Executor) {
		e.minVersion = constraint
	}
}

// WithStopOnUnmatched stops matching at the first unmatched token.
// By default every unmatched token is collected.
func WithStopOnUnmatched(stop bool) Option {
	return func(e *Executor) {
		e.stopOnUnmatched = stop
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithHistory records every dispatch in store.
func WithHistory(store ports.HistoryStore) Option {
	return func(e *Executor) {
		e.history = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor for schema.
func New(schema *domain.Schema, opts ...Option) *Executor {
	e := &Executor{
		schema:   schema,
		exitFunc: os.Exit,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if schema != nil && schema.Name != "" {
		e.logger = e.logger.With("schema", schema.Name)
	}
	return e
}

// Use registers extensions. They are merged after the schema's own Extends, in order.
func (e *Executor) Use(ext ...domain.Extension) *Executor {
	e.extensions = append(e.extensions, ext...)
	return e
}

// Schema returns the schema with every extension merged in.
func (e *Executor) Schema() *domain.Schema {
	return e.schema.Resolve(e.extensions...)
}

// Engine builds the matching engine for the resolved schema.
// It is useful for adapters that only need matching (see ports.Matcher).
func (e *Executor) Engine() ports.Matcher {
	return e.engine()
}

func (e *Executor) engine() *runtime.Engine {
	return runtime.NewEngine(e.Schema(),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithStopOnUnmatched(e.stopOnUnmatched),
	)
}

// Analyse runs matching only and returns the dispatch result without invoking callbacks.
// A nil argv defaults to os.Args[1:] and an empty cwd to the working directory.
func (e *Executor) Analyse(ctx context.Context, argv []string, cwd string) (*domain.Result, error) {
	if e.schema == nil {
		return nil, fmt.Errorf("%w: executor has no schema", domain.ErrSchemaNotFound)
	}
	argv, cwd, err := defaults(argv, cwd)
	if err != nil {
		return nil, err
	}
	return e.engine().Run(ctx, argv, cwd)
}

// Execute matches argv and dispatches the result.
// A nil argv defaults to os.Args[1:] and an empty cwd to the working directory.
// The returned error comes from the version gate, a converter, or a callback; structural
// errors are reported through the exception handlers and Outcome.ExitCode instead.
func (e *Executor) Execute(ctx context.Context, argv []string, cwd string) (runner.Outcome, error) {
	out, err := e.execute(ctx, argv, cwd)
	if e.exit {
		e.exitFunc(out.ExitCode)
	}
	return out, err
}

func (e *Executor) execute(ctx context.Context, argv []string, cwd string) (runner.Outcome, error) {
	if e.schema == nil {
		return runner.Outcome{ExitCode: runner.ExitFailure}, fmt.Errorf("%w: executor has no schema", domain.ErrSchemaNotFound)
	}

	argv, cwd, err := defaults(argv, cwd)
	if err != nil {
		return runner.Outcome{ExitCode: runner.ExitFailure}, err
	}

	r := runner.NewRunner(
		runner.WithLogger(e.logger),
		runner.WithHistory(e.history),
		runner.WithHooks(e.hooks),
	)
	rejected := &domain.Result{Schema: e.schema.Name, Argv: argv, Cwd: cwd}

	if err := runner.CheckRuntime(e.minVersion); err != nil {
		e.logger.Error("runtime version rejected", "constraint", e.minVersion, "error", err)
		return r.Reject(ctx, rejected, runner.ExitVersion), err
	}

	res, err := e.engine().Run(ctx, argv, cwd)
	if err != nil {
		e.logger.Error("argument conversion failed", "error", err)
		return r.Reject(ctx, rejected, runner.ExitFailure), err
	}

	return r.Dispatch(ctx, res)
}

func defaults(argv []string, cwd string) ([]string, string, error) {
	if argv == nil {
		argv = os.Args[1:]
	}
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cwd = wd
	}
	return argv, cwd, nil
}
