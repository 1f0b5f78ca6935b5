package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/argtree/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.HistoryStore using Redis.
// Each record is a JSON string; a sorted set indexes record IDs by dispatch time.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "argtree:history:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Append persists the record and indexes it by its timestamp.
func (s *Store) Append(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" {
		return errors.New("record requires an id")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(rec.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(rec.At.UnixMilli()),
		Member: rec.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves a record from Redis.
func (s *Store) Get(ctx context.Context, id string) (*domain.Record, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rec domain.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

// List returns records newest first.
// Index entries whose record has expired are pruned lazily.
func (s *Store) List(ctx context.Context, limit int) ([]*domain.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	var out []*domain.Record
	start := int64(0)
	for {
		ids, err := s.client.ZRevRange(ctx, s.indexKey(), start, stop).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list records: %w", err)
		}
		if len(ids) == 0 {
			return out, nil
		}

		var stale []any
		for _, id := range ids {
			rec, err := s.Get(ctx, id)
			if errors.Is(err, domain.ErrRecordNotFound) {
				stale = append(stale, id)
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}

		if len(stale) == 0 {
			return out, nil
		}
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired records: %w", err)
		}
		if limit <= 0 {
			return out, nil
		}

		// Refill the page after pruning so the caller still gets up to limit records.
		start = int64(len(out))
		stop = int64(limit) - 1
		if start > stop {
			return out, nil
		}
	}
}

// Delete removes the record and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
