package ports

import (
	"context"

	"github.com/aretw0/argtree/pkg/domain"
)

// Matcher runs the matching phase of a dispatch without invoking any callback.
// This is the interface used by adapters (e.g., HTTP) that report results instead of acting on them.
type Matcher interface {
	// Run matches argv against the schema and returns the dispatch result.
	Run(ctx context.Context, argv []string, cwd string) (*domain.Result, error)

	// Schema returns the resolved schema for introspection.
	Schema() *domain.Schema
}
