// Package inmem provides a process-local, non-durable tabledb.Store.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/dekarrin/tableau/internal/tabledb"
)

// NewDatastore returns a tabledb.Store backed by an in-process map. It is
// the default store and is used in tests; it is lost on process restart.
func NewDatastore() tabledb.Store {
	return &store{
		history: newHistoryRepository(),
	}
}

type store struct {
	history *historyRepository
}

func (s *store) History() tabledb.HistoryRepository { return s.history }

func (s *store) Close() error { return nil }

func newHistoryRepository() *historyRepository {
	return &historyRepository{
		records: make(map[string]tabledb.Record),
	}
}

type historyRepository struct {
	mu      sync.Mutex
	records map[string]tabledb.Record
}

func (r *historyRepository) Put(ctx context.Context, rec tabledb.Record) (tabledb.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.Fingerprint] = rec
	return rec, nil
}

func (r *historyRepository) Get(ctx context.Context, fingerprint string) (tabledb.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[fingerprint]
	if !ok {
		return tabledb.Record{}, tabledb.ErrNotFound
	}
	return rec, nil
}

func (r *historyRepository) Recent(ctx context.Context, limit int) ([]tabledb.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]tabledb.Record, 0, len(r.records))
	for _, rec := range r.records {
		all = append(all, rec)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.After(all[j].Created)
	})

	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *historyRepository) Close() error { return nil }
