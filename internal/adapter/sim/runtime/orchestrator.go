package runtime

import (
	"context"
	"log"
	"math"

	"delvelife/internal/app/ports"
	"delvelife/internal/app/reward"
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"
)

const (
	EventRunStarted    = "run_started"
	EventRewardGranted = "reward_granted"
)

// RewardGranter settles the bookkeeping for a finished run.
type RewardGranter interface {
	Grant(ctx context.Context, req reward.GrantRequest) (reward.GrantResponse, error)
}

type orchPhase string

const (
	orchIdle    orchPhase = "idle"
	orchEnRoute orchPhase = "en_route"
	orchDelving orchPhase = "delving"
	orchHoming  orchPhase = "homing"
)

// Orchestrator sequences assigned dungeon cycles: order travel to the
// entrance, start the run once the actor is free there, wait out the delve,
// and settle the reward when the actor surfaces. It is stepped once per
// frame by the sim loop and never blocks; every wait is a poll.
type Orchestrator struct {
	Reward RewardGranter
	Logf   func(format string, args ...any)

	phase   orchPhase
	queue   [][]dungeon.Level
	current []dungeon.Level
}

func NewOrchestrator(granter RewardGranter) *Orchestrator {
	return &Orchestrator{Reward: granter, phase: orchIdle}
}

func (o *Orchestrator) enqueue(levels []dungeon.Level) {
	table := make([]dungeon.Level, len(levels))
	copy(table, levels)
	o.queue = append(o.queue, table)
}

// step runs one cooperative frame. Called by Sim.Step with the mutex held,
// so it must not block; reward settlement happens out of band in settle.
func (o *Orchestrator) step(s *Sim) []ports.JournalEntry {
	var entries []ports.JournalEntry

	a := s.actor
	switch o.phase {
	case orchIdle:
		if len(o.queue) == 0 || a.State() != actor.StateTravel {
			break
		}
		o.current = o.queue[0]
		o.queue = o.queue[1:]
		a.SetTravel(a.Places().Dungeon)
		o.phase = orchEnRoute
	case orchEnRoute:
		// The actor may detour for a need on the way; wait until it is
		// free and standing at the entrance. After a detour the travel
		// order points at the need place, so keep re-issuing it.
		if a.State() != actor.StateTravel {
			break
		}
		if !near(a.Position(), a.Places().Dungeon) {
			if a.Pending() == nil && a.Active() == nil && a.Target() != a.Places().Dungeon {
				a.SetTravel(a.Places().Dungeon)
			}
			break
		}
		run, err := dungeon.NewRun(s.newID(), o.current, s.rng)
		if err != nil {
			o.logf("orchestrator: drop assignment: %v", err)
			o.current = nil
			o.phase = orchIdle
			break
		}
		if err := a.BeginDungeonRun(run); err != nil {
			// A directly-started run got there first; try again next frame.
			break
		}
		entries = append(entries, s.entry(EventRunStarted, map[string]any{
			"run_id": run.ID(),
			"levels": run.LevelCount(),
		}))
		o.phase = orchDelving
	case orchDelving:
		// The actor self-orders travel home when the run finishes.
		if a.State() == actor.StateTravel {
			o.phase = orchHoming
		}
	case orchHoming:
		if near(a.Position(), a.Places().Home) {
			o.current = nil
			o.phase = orchIdle
		}
	}
	return entries
}

// settle grants the reward for every finishing run, whether the orchestrator
// sequenced it or an operator started it directly. Sim.Step calls it after
// releasing the mutex: the grant touches a repository and must not stall the
// tick loop.
func (o *Orchestrator) settle(s *Sim, events []actor.Event) []ports.JournalEntry {
	var entries []ports.JournalEntry
	for _, evt := range events {
		if evt.Type != actor.EventRunFinished {
			continue
		}
		if entry, ok := o.settleReward(s, evt); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (o *Orchestrator) settleReward(s *Sim, evt actor.Event) (ports.JournalEntry, bool) {
	if o.Reward == nil {
		return ports.JournalEntry{}, false
	}
	runID, _ := evt.Payload["run_id"].(string)
	levels, _ := evt.Payload["levels"].(int)
	cleared, _ := evt.Payload["cleared"].(int)
	aborted, _ := evt.Payload["aborted"].(bool)

	resp, err := o.Reward.Grant(context.Background(), reward.GrantRequest{
		RunID:   runID,
		Levels:  levels,
		Cleared: cleared,
		Aborted: aborted,
	})
	if err != nil {
		o.logf("orchestrator: grant reward for %s: %v", runID, err)
		return ports.JournalEntry{}, false
	}
	return s.entry(EventRewardGranted, map[string]any{
		"run_id":  runID,
		"coins":   resp.Coins,
		"balance": resp.Balance,
	}), true
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func near(a, b actor.Position) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= actor.ArrivalEpsilon
}
