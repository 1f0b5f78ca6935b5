package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aretw0/argtree/pkg/domain"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data  map[string]*domain.Record
	order []string
	mu    sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Record),
	}
}

// Append stores a copy of the record.
func (s *Store) Append(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" {
		return errors.New("record requires an id")
	}
	copied := clone(rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.data[rec.ID] = copied
	return nil
}

// Get retrieves a copy of the record so callers can't mutate the store through it.
func (s *Store) Get(ctx context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return clone(rec), nil
}

// List returns records newest first; ties keep the most recently appended first.
func (s *Store) List(ctx context.Context, limit int) ([]*domain.Record, error) {
	s.mu.RLock()
	out := make([]*domain.Record, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, clone(s.data[s.order[i]]))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return nil
	}
	delete(s.data, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(rec *domain.Record) *domain.Record {
	ret := *rec
	ret.Argv = append([]string(nil), rec.Argv...)
	ret.Tasks = append([]string(nil), rec.Tasks...)
	ret.Errors = append([]domain.ArgumentError(nil), rec.Errors...)
	ret.Args = make(domain.Arguments, len(rec.Args))
	for k, v := range rec.Args {
		ret.Args[k] = v
	}
	return &ret
}
