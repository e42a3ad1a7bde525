package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"delvelife/internal/app/ports"
)

type fakeRepo struct {
	entries   []ports.JournalEntry
	lastLimit int
}

func (r *fakeRepo) Append(_ context.Context, _ []ports.JournalEntry) error { return nil }

func (r *fakeRepo) List(_ context.Context, limit int) ([]ports.JournalEntry, error) {
	r.lastLimit = limit
	return r.entries, nil
}

func TestExecute_DefaultsLimit(t *testing.T) {
	repo := &fakeRepo{entries: []ports.JournalEntry{
		{ID: "e2", Type: "status", OccurredAt: time.Unix(2, 0)},
		{ID: "e1", Type: "run_finished", OccurredAt: time.Unix(1, 0)},
	}}
	uc := UseCase{Entries: repo}

	out, err := uc.Execute(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.lastLimit != defaultLimit {
		t.Fatalf("limit = %d, want default %d", repo.lastLimit, defaultLimit)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out.Entries))
	}
}

func TestExecute_RejectsNegativeLimit(t *testing.T) {
	uc := UseCase{Entries: &fakeRepo{}}
	if _, err := uc.Execute(context.Background(), Request{Limit: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
