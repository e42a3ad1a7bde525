package runtime

import (
	"context"

	"delvelife/internal/app/ports"
	"delvelife/internal/domain/actor"
)

// MetricsObserver feeds run and need lifecycle entries into a metrics sink.
func MetricsObserver(m ports.SimMetrics) Observer {
	return func(e ports.JournalEntry) {
		switch e.Type {
		case EventRunStarted:
			m.RecordRunStarted()
		case actor.EventRunFinished:
			aborted, _ := e.Payload["aborted"].(bool)
			m.RecordRunFinished(aborted)
		case actor.EventNeedSatisfied:
			kind, _ := e.Payload["kind"].(string)
			m.RecordNeedSatisfied(actor.NeedKind(kind))
		}
	}
}

// JournalObserver appends every entry to a journal, the 1 Hz status stream
// included. Append failures are logged, never propagated back into the loop.
func JournalObserver(repo ports.JournalRepository, logf func(format string, args ...any)) Observer {
	return func(e ports.JournalEntry) {
		if err := repo.Append(context.Background(), []ports.JournalEntry{e}); err != nil && logf != nil {
			logf("journal: append %s: %v", e.Type, err)
		}
	}
}
