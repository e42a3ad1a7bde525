package dungeon

import (
	"testing"
)

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func noDamage(t *testing.T) func(float64) {
	t.Helper()
	return func(damage float64) {
		t.Fatalf("unexpected damage %v", damage)
	}
}

func TestNewRun_RejectsEmptyLevelTable(t *testing.T) {
	if _, err := NewRun("run-1", nil, fixedSource{0.5}); err != ErrInvalidRunDefinition {
		t.Fatalf("expected ErrInvalidRunDefinition, got %v", err)
	}
}

func TestAdvance_DescentTurnsBackAfterLastLevel(t *testing.T) {
	// Two levels of 8s each; dt=0.5 keeps the progress math exact.
	run, err := NewRun("run-1", []Level{
		{TravelTime: 8},
		{TravelTime: 8},
	}, fixedSource{0.99})
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}

	for i := 0; i < 31; i++ {
		run.Advance(0.5, 100, 100, noDamage(t))
	}
	if run.Exiting() {
		t.Fatalf("exiting before total travel time elapsed")
	}
	run.Advance(0.5, 100, 100, noDamage(t))
	if !run.Exiting() {
		t.Fatalf("expected exiting after 16s of descent")
	}
	if run.Phase() != PhaseReturning {
		t.Fatalf("phase = %s, want %s", run.Phase(), PhaseReturning)
	}
	if run.LevelIndex() != 1 {
		t.Fatalf("level index not clamped to last level, got %d", run.LevelIndex())
	}
	if run.Cleared() != 2 {
		t.Fatalf("cleared = %d, want 2", run.Cleared())
	}
}

func TestAdvance_LowVitalityForcesExitSameCall(t *testing.T) {
	run, err := NewRun("run-1", []Level{{TravelTime: 8}}, fixedSource{0.99})
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}

	run.Advance(0.5, 20, 100, noDamage(t))
	if !run.Exiting() {
		t.Fatalf("expected exiting at 20%% vitality")
	}
	if run.Progress() != 0.5/8 {
		t.Fatalf("progress should still advance on the exit tick, got %v", run.Progress())
	}
}

func TestRetreat_ReachesSurfaceAfterTotalTravelTime(t *testing.T) {
	run, err := NewRun("run-1", []Level{
		{TravelTime: 8},
		{TravelTime: 8},
	}, fixedSource{0.99})
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}
	run.level = 1
	run.progress = 1.0
	run.phase = PhaseReturning

	for i := 0; i < 16; i++ {
		run.Retreat(0.5, noDamage(t))
	}
	if run.LevelIndex() != 0 || run.Progress() != 1.0 {
		t.Fatalf("expected re-entry at deep edge of level 0, got level=%d progress=%v", run.LevelIndex(), run.Progress())
	}
	for i := 0; i < 16; i++ {
		run.Retreat(0.5, noDamage(t))
	}
	if !run.Finished() {
		t.Fatalf("expected finished after 16s of retreat")
	}

	// Terminal: further calls are no-ops.
	run.Retreat(0.5, noDamage(t))
	run.Advance(0.5, 100, 100, noDamage(t))
	if run.Phase() != PhaseAtSurface {
		t.Fatalf("finished run mutated, phase=%s", run.Phase())
	}
}

func TestAdvance_SpawnRollAppliesMonsterDamage(t *testing.T) {
	run, err := NewRun("run-1", []Level{{TravelTime: 8, SpawnChance: 1.0, MonsterDamage: 7}}, fixedSource{0.2})
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}

	var dealt float64
	run.Advance(1.0, 100, 100, func(damage float64) { dealt += damage })
	if dealt != 7 {
		t.Fatalf("dealt = %v, want 7", dealt)
	}

	// Accumulator was reset: a short follow-up tick must not roll again.
	run.Advance(0.4, 100, 100, noDamage(t))
}

func TestRetreat_SpawnCadenceIsSlowerAndHalved(t *testing.T) {
	src := &seqSource{vals: []float64{0.6, 0.4}}
	run, err := NewRun("run-1", []Level{
		{TravelTime: 100, SpawnChance: 1.0, MonsterDamage: 5},
	}, src)
	if err != nil {
		t.Fatalf("NewRun error: %v", err)
	}
	run.phase = PhaseReturning
	run.progress = 1.0

	// 1.0s accumulated: below the 1.5s retreat period, no roll yet.
	run.Retreat(1.0, noDamage(t))

	// 1.5s accumulated, draw 0.6 >= 0.5*1.0: rolled but no hit.
	run.Retreat(0.5, noDamage(t))

	// Next period, draw 0.4 < 0.5: hit.
	var dealt float64
	run.Retreat(1.5, func(damage float64) { dealt += damage })
	if dealt != 5 {
		t.Fatalf("dealt = %v, want 5", dealt)
	}
}
