package command

import (
	"context"
	"errors"
	"math"

	"delvelife/internal/app/ports"
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"
)

var (
	ErrInvalidRequest    = errors.New("invalid command request")
	ErrInvalidLevelTable = errors.New("invalid level table")
)

type UseCase struct {
	Sim     ports.Simulation
	Metrics ports.SimMetrics
}

func (u UseCase) Travel(_ context.Context, req TravelRequest) error {
	if !isFinite(req.X) || !isFinite(req.Y) {
		u.record("travel", false)
		return ErrInvalidRequest
	}
	u.Sim.SetTravel(actor.Position{X: req.X, Y: req.Y})
	u.record("travel", true)
	return nil
}

func (u UseCase) StartNeed(_ context.Context, req NeedRequest) error {
	if req.Kind == "" || req.Seconds <= 0 || !isFinite(req.Seconds) {
		u.record("need", false)
		return ErrInvalidRequest
	}
	// Unknown kinds are permitted: the restore ends up a no-op.
	u.Sim.StartNeed(actor.NeedKind(req.Kind), req.Seconds)
	u.record("need", true)
	return nil
}

func (u UseCase) BeginRun(_ context.Context, req RunRequest) (RunResponse, error) {
	levels, err := buildLevels(req.Levels)
	if err != nil {
		u.record("run", false)
		return RunResponse{}, err
	}
	runID, err := u.Sim.BeginRun(levels)
	if err != nil {
		u.record("run", false)
		return RunResponse{}, err
	}
	u.record("run", true)
	return RunResponse{RunID: runID}, nil
}

// Assign hands a level table to the orchestrator, which sequences the full
// travel -> delve -> return cycle instead of starting the run immediately.
func (u UseCase) Assign(_ context.Context, req RunRequest) error {
	levels, err := buildLevels(req.Levels)
	if err != nil {
		u.record("assign", false)
		return err
	}
	if err := u.Sim.Assign(levels); err != nil {
		u.record("assign", false)
		return err
	}
	u.record("assign", true)
	return nil
}

func buildLevels(in []LevelInput) ([]dungeon.Level, error) {
	if len(in) == 0 {
		return nil, dungeon.ErrInvalidRunDefinition
	}
	levels := make([]dungeon.Level, 0, len(in))
	for _, l := range in {
		if l.TravelTime <= 0 || !isFinite(l.TravelTime) {
			return nil, ErrInvalidLevelTable
		}
		if l.SpawnChance < 0 || l.SpawnChance > 1 {
			return nil, ErrInvalidLevelTable
		}
		if l.MonsterDamage < 0 || !isFinite(l.MonsterDamage) {
			return nil, ErrInvalidLevelTable
		}
		levels = append(levels, dungeon.Level{
			TravelTime:    l.TravelTime,
			SpawnChance:   l.SpawnChance,
			MonsterDamage: l.MonsterDamage,
		})
	}
	return levels, nil
}

func (u UseCase) record(kind string, accepted bool) {
	if u.Metrics != nil {
		u.Metrics.RecordCommand(kind, accepted)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
