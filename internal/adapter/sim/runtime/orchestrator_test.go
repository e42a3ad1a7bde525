package runtime

import (
	"context"
	"testing"

	"delvelife/internal/app/ports"
	"delvelife/internal/app/reward"
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"
)

type recordingGranter struct {
	requests []reward.GrantRequest
	resp     reward.GrantResponse
	err      error
}

func (g *recordingGranter) Grant(_ context.Context, req reward.GrantRequest) (reward.GrantResponse, error) {
	g.requests = append(g.requests, req)
	return g.resp, g.err
}

func TestOrchestrator_FullAssignedCycle(t *testing.T) {
	granter := &recordingGranter{resp: reward.GrantResponse{Coins: 35, Balance: 35}}
	orch := NewOrchestrator(granter)
	orch.Logf = t.Logf
	s, entries := newTestSim(orch)

	table := []dungeon.Level{{TravelTime: 0.8, SpawnChance: 0, MonsterDamage: 0}}
	if err := s.Assign(table); err != nil {
		t.Fatalf("Assign error: %v", err)
	}

	// Budget well past the whole cycle: breather at home, walk to the
	// entrance, breather there, descend and return, walk back home.
	for i := 0; i < 1500; i++ {
		s.Step(0.1)
		if orch.phase == orchIdle && len(granter.requests) > 0 {
			break
		}
	}

	if orch.phase != orchIdle {
		t.Fatalf("orchestrator stuck in phase %s", orch.phase)
	}
	if len(granter.requests) != 1 {
		t.Fatalf("reward granted %d times, want 1", len(granter.requests))
	}
	req := granter.requests[0]
	if req.RunID == "" || req.Levels != 1 || req.Cleared != 1 || req.Aborted {
		t.Fatalf("unexpected grant request %+v", req)
	}

	if got := countByType(*entries, EventRunStarted); got != 1 {
		t.Fatalf("run_started entries = %d, want 1", got)
	}
	if got := countByType(*entries, actor.EventRunFinished); got != 1 {
		t.Fatalf("run_finished entries = %d, want 1", got)
	}
	if got := countByType(*entries, EventRewardGranted); got != 1 {
		t.Fatalf("reward_granted entries = %d, want 1", got)
	}

	snap := s.Snapshot()
	if snap.Run != nil {
		t.Fatalf("run still attached after cycle: %+v", snap.Run)
	}
	if !near(snap.Position, testPlaces().Home) {
		t.Fatalf("actor not home after cycle: %+v", snap.Position)
	}
}

func TestOrchestrator_QueuedAssignmentsRunBackToBack(t *testing.T) {
	granter := &recordingGranter{}
	orch := NewOrchestrator(granter)
	orch.Logf = t.Logf
	s, _ := newTestSim(orch)

	table := []dungeon.Level{{TravelTime: 0.8}}
	if err := s.Assign(table); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if err := s.Assign(table); err != nil {
		t.Fatalf("Assign error: %v", err)
	}

	for i := 0; i < 3000; i++ {
		s.Step(0.1)
		if orch.phase == orchIdle && len(granter.requests) == 2 {
			break
		}
	}
	if len(granter.requests) != 2 {
		t.Fatalf("reward granted %d times, want 2", len(granter.requests))
	}
}

// snapshotGranter reads the sim back while the grant is in flight, the way
// HTTP handlers do when a slow repository write holds up settlement.
type snapshotGranter struct {
	sim   *Sim
	snaps []ports.SimSnapshot
}

func (g *snapshotGranter) Grant(_ context.Context, _ reward.GrantRequest) (reward.GrantResponse, error) {
	g.snaps = append(g.snaps, g.sim.Snapshot())
	return reward.GrantResponse{Coins: 10, Balance: 10}, nil
}

func TestStep_SettlesRewardWithoutHoldingSimLock(t *testing.T) {
	granter := &snapshotGranter{}
	orch := NewOrchestrator(granter)
	orch.Logf = t.Logf
	s, entries := newTestSim(orch)
	granter.sim = s

	if _, err := s.BeginRun([]dungeon.Level{{TravelTime: 0.8}}); err != nil {
		t.Fatalf("BeginRun error: %v", err)
	}
	for i := 0; i < 200; i++ {
		s.Step(0.1)
	}

	if len(granter.snaps) != 1 {
		t.Fatalf("granter observed %d snapshots, want 1", len(granter.snaps))
	}
	finished, granted := -1, -1
	for i, e := range *entries {
		switch e.Type {
		case actor.EventRunFinished:
			finished = i
		case EventRewardGranted:
			granted = i
		}
	}
	if finished == -1 || granted == -1 || granted < finished {
		t.Fatalf("entry order run_finished=%d reward_granted=%d", finished, granted)
	}
}

func TestOrchestrator_SettlesDirectlyStartedRuns(t *testing.T) {
	granter := &recordingGranter{resp: reward.GrantResponse{Coins: 10, Balance: 10}}
	orch := NewOrchestrator(granter)
	orch.Logf = t.Logf
	s, entries := newTestSim(orch)

	runID, err := s.BeginRun([]dungeon.Level{{TravelTime: 0.8}})
	if err != nil {
		t.Fatalf("BeginRun error: %v", err)
	}
	for i := 0; i < 200; i++ {
		s.Step(0.1)
	}
	if len(granter.requests) != 1 {
		t.Fatalf("reward granted %d times, want 1", len(granter.requests))
	}
	if granter.requests[0].RunID != runID {
		t.Fatalf("grant run id = %s, want %s", granter.requests[0].RunID, runID)
	}
	if got := countByType(*entries, EventRewardGranted); got != 1 {
		t.Fatalf("reward_granted entries = %d, want 1", got)
	}
}
