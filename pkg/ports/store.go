package ports

import (
	"context"

	"github.com/aretw0/argtree/pkg/domain"
)

// HistoryStore persists a summary of every dispatch.
type HistoryStore interface {
	// Append stores rec. The record ID must be set.
	Append(ctx context.Context, rec *domain.Record) error

	// Get retrieves a record by ID.
	// Returns domain.ErrRecordNotFound if the record does not exist.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// List returns up to limit records, newest first. A limit <= 0 returns every record.
	List(ctx context.Context, limit int) ([]*domain.Record, error)

	// Delete removes a record. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
