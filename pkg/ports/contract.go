package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore implementation
// adheres to the defined interface contract.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000000")
	base := time.Now().UTC().Truncate(time.Millisecond)

	record := func(n int) *domain.Record {
		return &domain.Record{
			ID:       fmt.Sprintf("%s-%d", prefix, n),
			Schema:   "contract",
			Argv:     []string{"deploy", "--env=prod", "extra"},
			Tasks:    []string{"deploy"},
			Args:     domain.Arguments{"env": "prod"},
			Errors:   []domain.ArgumentError{{Index: 3, Argument: "extra"}},
			ExitCode: 1,
			At:       base.Add(time.Duration(n) * time.Second),
		}
	}

	t.Run("Append and Get", func(t *testing.T) {
		rec := record(0)
		require.NoError(t, store.Append(ctx, rec), "Append should not return error")
		defer func() { _ = store.Delete(ctx, rec.ID) }()

		loaded, err := store.Get(ctx, rec.ID)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Argv, loaded.Argv)
		assert.Equal(t, rec.Tasks, loaded.Tasks)
		assert.Equal(t, "prod", loaded.Args["env"])
		assert.Equal(t, rec.Errors, loaded.Errors)
		assert.Equal(t, 1, loaded.ExitCode)
		assert.True(t, rec.At.Equal(loaded.At), "timestamps differ: %v vs %v", rec.At, loaded.At)

		// Mutating the returned record must not affect the store.
		loaded.Argv[0] = "mutated"
		again, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "deploy", again.Argv[0])
	})

	t.Run("Append Without ID", func(t *testing.T) {
		assert.Error(t, store.Append(ctx, &domain.Record{}))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := record(1)
		require.NoError(t, store.Append(ctx, rec))

		require.NoError(t, store.Delete(ctx, rec.ID), "Delete should not return error")

		_, err := store.Get(ctx, rec.ID)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "Get after Delete should return ErrRecordNotFound")
		assert.NoError(t, store.Delete(ctx, rec.ID), "Deleting twice should be a no-op")
	})

	t.Run("List Newest First", func(t *testing.T) {
		recs := []*domain.Record{record(10), record(12), record(11)}
		for _, rec := range recs {
			require.NoError(t, store.Append(ctx, rec))
		}
		defer func() {
			for _, rec := range recs {
				_ = store.Delete(ctx, rec.ID)
			}
		}()

		latest, err := store.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		assert.Equal(t, recs[1].ID, latest[0].ID)
		assert.Equal(t, recs[2].ID, latest[1].ID)

		all, err := store.List(ctx, 0)
		require.NoError(t, err)
		ids := make([]string, 0, len(all))
		for _, rec := range all {
			ids = append(ids, rec.ID)
		}
		for _, rec := range recs {
			assert.Contains(t, ids, rec.ID)
		}
	})
}
