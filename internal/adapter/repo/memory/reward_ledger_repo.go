package memory

import (
	"context"
	"time"

	"delvelife/internal/app/ports"
)

type RewardLedgerRepo struct {
	store *Store
}

func NewRewardLedgerRepo(store *Store) RewardLedgerRepo {
	return RewardLedgerRepo{store: store}
}

func (r RewardLedgerRepo) Add(_ context.Context, runID string, coins int, _ time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.ledger[runID]; exists {
		return ports.ErrConflict
	}
	r.store.ledger[runID] = coins
	r.store.balance += coins
	return nil
}

func (r RewardLedgerRepo) Balance(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.balance, nil
}
