package ports

import (
	"context"
	"time"
)

// RunRecord is the orchestrator-side bookkeeping row for one finished
// dungeon run.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	Levels      int       `json:"levels"`
	Cleared     int       `json:"cleared"`
	Aborted     bool      `json:"aborted"`
	RewardCoins int       `json:"reward_coins"`
	FinishedAt  time.Time `json:"finished_at"`
}

type RunRecordRepository interface {
	Save(ctx context.Context, record RunRecord) error
	GetByRunID(ctx context.Context, runID string) (RunRecord, error)
	List(ctx context.Context, limit int) ([]RunRecord, error)
}

// JournalEntry is one telemetry observation: a 1 Hz status line or a
// lifecycle event (run started/finished, need satisfied, reward granted).
type JournalEntry struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type JournalRepository interface {
	Append(ctx context.Context, entries []JournalEntry) error
	List(ctx context.Context, limit int) ([]JournalEntry, error)
}

type RewardLedgerRepository interface {
	// Add credits coins for a run. Crediting the same run twice returns
	// ErrConflict.
	Add(ctx context.Context, runID string, coins int, grantedAt time.Time) error
	Balance(ctx context.Context) (int, error)
}
