package memory

import (
	"context"

	"delvelife/internal/app/ports"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(_ context.Context, entries []ports.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.journal = append(r.store.journal, entries...)
	return nil
}

// List returns the most recent entries first.
func (r JournalRepo) List(_ context.Context, limit int) ([]ports.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.JournalEntry, 0, limit)
	for i := len(r.store.journal) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.store.journal[i])
	}
	return out, nil
}
