package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/schema"
)

// Engine matches argument vectors against a schema tree.
// It holds no per-dispatch state, so one Engine may serve concurrent Run calls as long
// as the schema is not modified after NewEngine.
type Engine struct {
	schema          *domain.Schema
	root            *domain.Node
	converters      []domain.Converter
	logger          *slog.Logger
	hooks           domain.LifecycleHooks
	stopOnUnmatched bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStopOnUnmatched aborts matching at the first unmatched token instead of
// recording it and continuing with the rest of the vector.
func WithStopOnUnmatched(stop bool) EngineOption {
	return func(e *Engine) {
		e.stopOnUnmatched = stop
	}
}

// WithConverters appends converters after the schema's own parsers.
func WithConverters(converters ...domain.Converter) EngineOption {
	return func(e *Engine) {
		e.converters = append(e.converters, converters...)
	}
}

// NewEngine creates an engine for a schema whose extensions are already resolved.
func NewEngine(s *domain.Schema, opts ...EngineOption) *Engine {
	e := &Engine{
		schema:     s,
		root:       s.Root(),
		converters: append([]domain.Converter(nil), s.Parsers...),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the schema the engine matches against.
func (e *Engine) Schema() *domain.Schema {
	return e.schema
}

// Run consumes argv one token at a time and returns the dispatch result.
// Unmatched tokens are reported in Result.Errors, not as an error; the returned error is
// non-nil only when a converter fails.
func (e *Engine) Run(ctx context.Context, argv []string, cwd string) (*domain.Result, error) {
	d := &dispatch{
		engine: e,
		args:   domain.Arguments{},
		trace:  NewTrace(len(argv)),
		stack:  NewStack(e.root),
		impl:   e.root.Execute,
	}
	d.addHandlers(e.root.Exception)

	for i, token := range argv {
		matched, err := d.step(ctx, i, token)
		if err != nil {
			return nil, err
		}
		if !matched && e.stopOnUnmatched {
			e.logger.Debug("matching stopped at unmatched token", "index", i+1, "token", token)
			break
		}
	}

	return &domain.Result{
		Schema:    e.schema.Name,
		Argv:      append([]string{}, argv...),
		Cwd:       cwd,
		Args:      d.args,
		Tasks:     d.stack.Tasks(),
		Trace:     d.trace.Entries(),
		Errors:    d.errors,
		Stack:     d.stack.Nodes(),
		Execute:   d.impl,
		Exception: d.handlers,
	}, nil
}

// dispatch is the mutable state of one Run call.
type dispatch struct {
	engine   *Engine
	args     domain.Arguments
	trace    *Trace
	stack    *Stack
	impl     domain.Implementation
	handlers []domain.ExceptionHandler
	errors   []domain.ArgumentError
}

// step matches a single token against every reachable candidate.
func (d *dispatch) step(ctx context.Context, index int, token string) (bool, error) {
	d.trace.Record(index, token)

	var convErr error
	matched := d.stack.Each(func(_, child *domain.Node) bool {
		ok, err := d.try(ctx, index, token, child)
		if err != nil {
			convErr = err
			return true
		}
		return ok
	})
	if convErr != nil {
		return false, convErr
	}

	if !matched {
		argErr := domain.ArgumentError{Index: index + 1, Argument: token}
		d.errors = append(d.errors, argErr)
		d.engine.logger.Debug("token unmatched", "index", argErr.Index, "token", token)
		if d.engine.hooks.OnUnmatched != nil {
			d.engine.hooks.OnUnmatched(ctx, &domain.UnmatchedEvent{
				EventBase: d.event(domain.EventUnmatched),
				Index:     argErr.Index,
				Argument:  token,
			})
		}
	}
	return matched, nil
}

// try applies one candidate to the token. It reports whether the candidate claimed it.
func (d *dispatch) try(ctx context.Context, index int, token string, child *domain.Node) (bool, error) {
	if child.Kind == domain.KindValue {
		if !d.slotOpen(index, child) || d.deferToIndexed(index, child) {
			return false, nil
		}
		v, err := schema.Convert(d.engine.converters, child, token)
		if err != nil {
			return false, err
		}
		d.args[child.Key()] = v
		d.matched(ctx, index, token, child)
		return true, nil
	}

	prefix, ok := matchFilters(token, child.Filters, child.Kind == domain.KindParam)
	if !ok {
		return false, nil
	}

	switch child.Kind {
	case domain.KindParam:
		v, err := schema.Convert(d.engine.converters, child, stripPrefix(token, prefix))
		if err != nil {
			return false, err
		}
		d.args[child.Key()] = v
		if len(child.Children) > 0 {
			d.stack.ReplaceTail(child)
		}
	case domain.KindFlag:
		d.args[child.Key()] = !child.Negated()
		if len(child.Children) > 0 {
			d.stack.ReplaceTail(child)
		}
	case domain.KindTask:
		d.impl = child.Execute
		d.addHandlers(child.Exception)
		d.stack.PushTask(child)
		if d.engine.hooks.OnTaskEnter != nil {
			d.engine.hooks.OnTaskEnter(ctx, d.matchEvent(domain.EventTaskEnter, index, token, child))
		}
	case domain.KindGroup:
		d.stack.ReplaceTail(child)
	default:
		return false, nil
	}

	d.matched(ctx, index, token, child)
	return true, nil
}

// slotOpen decides whether a Value node accepts the token at index.
func (d *dispatch) slotOpen(index int, child *domain.Node) bool {
	if child.Index == nil {
		return !d.args.Has(child.Key())
	}
	pos, ok := d.trace.Position(index, child.IndexedBy)
	return ok && pos == *child.Index
}

// deferToIndexed reports whether an unindexed Value must leave the token to a reachable
// indexed Value whose slot is open at index.
func (d *dispatch) deferToIndexed(index int, child *domain.Node) bool {
	if child.Index != nil {
		return false
	}
	return d.stack.Each(func(_, other *domain.Node) bool {
		return other.Kind == domain.KindValue && other.Index != nil && d.slotOpen(index, other)
	})
}

func (d *dispatch) matched(ctx context.Context, index int, token string, child *domain.Node) {
	d.trace.Annotate(index, child)
	d.engine.logger.Debug("token matched",
		"index", index,
		"token", token,
		"kind", child.Kind.String(),
		"node", child.Identity(),
	)
	if d.engine.hooks.OnMatch != nil {
		d.engine.hooks.OnMatch(ctx, d.matchEvent(domain.EventMatch, index, token, child))
	}
}

func (d *dispatch) addHandlers(handlers []domain.ExceptionHandler) {
	for _, h := range handlers {
		if h != nil {
			d.handlers = append(d.handlers, h)
		}
	}
}

func (d *dispatch) event(typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		Schema:    d.engine.schema.Name,
	}
}

func (d *dispatch) matchEvent(typ domain.EventType, index int, token string, child *domain.Node) *domain.MatchEvent {
	return &domain.MatchEvent{
		EventBase: d.event(typ),
		Index:     index,
		Token:     token,
		Node:      child.Identity(),
		Kind:      child.Kind,
	}
}
