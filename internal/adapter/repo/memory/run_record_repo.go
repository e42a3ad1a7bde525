package memory

import (
	"context"

	"delvelife/internal/app/ports"
)

type RunRecordRepo struct {
	store *Store
}

func NewRunRecordRepo(store *Store) RunRecordRepo {
	return RunRecordRepo{store: store}
}

func (r RunRecordRepo) Save(_ context.Context, record ports.RunRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.runs[record.RunID]; exists {
		return ports.ErrConflict
	}
	r.store.runs[record.RunID] = record
	r.store.order = append(r.store.order, record.RunID)
	return nil
}

func (r RunRecordRepo) GetByRunID(_ context.Context, runID string) (ports.RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.runs[runID]
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

// List returns the most recent records first.
func (r RunRecordRepo) List(_ context.Context, limit int) ([]ports.RunRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.RunRecord, 0, limit)
	for i := len(r.store.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.store.runs[r.store.order[i]])
	}
	return out, nil
}
