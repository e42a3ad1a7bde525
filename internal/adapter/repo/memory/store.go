package memory

import (
	"sync"

	"delvelife/internal/app/ports"
)

// Store is the process-local fallback used when no database is configured.
// The data mutex guards the maps; transactions are serialized separately by
// TxManager so read-then-write sequences inside RunInTx stay atomic.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]ports.RunRecord
	order   []string
	journal []ports.JournalEntry
	ledger  map[string]int
	balance int
}

func NewStore() *Store {
	return &Store{
		runs:   make(map[string]ports.RunRecord),
		ledger: make(map[string]int),
	}
}
