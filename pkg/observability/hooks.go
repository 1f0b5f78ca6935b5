package observability

import (
	"context"

	"github.com/aretw0/argtree/pkg/domain"
)

// Combine merges several hook sets into one that calls each non-nil callback in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var onMatch, onTask []func(context.Context, *domain.MatchEvent)
	var onUnmatched []func(context.Context, *domain.UnmatchedEvent)
	var onDispatch []func(context.Context, *domain.DispatchEvent)
	for _, h := range sets {
		if h.OnMatch != nil {
			onMatch = append(onMatch, h.OnMatch)
		}
		if h.OnTaskEnter != nil {
			onTask = append(onTask, h.OnTaskEnter)
		}
		if h.OnUnmatched != nil {
			onUnmatched = append(onUnmatched, h.OnUnmatched)
		}
		if h.OnDispatch != nil {
			onDispatch = append(onDispatch, h.OnDispatch)
		}
	}

	if len(onMatch) > 0 {
		out.OnMatch = func(ctx context.Context, e *domain.MatchEvent) {
			for _, fn := range onMatch {
				fn(ctx, e)
			}
		}
	}
	if len(onTask) > 0 {
		out.OnTaskEnter = func(ctx context.Context, e *domain.MatchEvent) {
			for _, fn := range onTask {
				fn(ctx, e)
			}
		}
	}
	if len(onUnmatched) > 0 {
		out.OnUnmatched = func(ctx context.Context, e *domain.UnmatchedEvent) {
			for _, fn := range onUnmatched {
				fn(ctx, e)
			}
		}
	}
	if len(onDispatch) > 0 {
		out.OnDispatch = func(ctx context.Context, e *domain.DispatchEvent) {
			for _, fn := range onDispatch {
				fn(ctx, e)
			}
		}
	}
	return out
}
