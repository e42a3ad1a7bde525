package dungeon

import (
	"errors"
	"math/rand"
)

var ErrInvalidRunDefinition = errors.New("dungeon run needs at least one level")

// Phase tracks where the run is in its lifecycle. A run only ever moves
// forward through descending -> returning -> at_surface.
type Phase string

const (
	PhaseDescending Phase = "descending"
	PhaseReturning  Phase = "returning"
	PhaseAtSurface  Phase = "at_surface"
)

const (
	// Dropping below this fraction of max vitality forces a retreat.
	earlyExitVitalityFraction = 0.3

	// Encounter cadence and odds differ between descent and retreat:
	// escaping is safer but not safe.
	descendSpawnPeriod = 1.0
	retreatSpawnPeriod = 1.5
	retreatChanceScale = 0.5
)

// Level describes one floor of a dungeon table.
type Level struct {
	TravelTime    float64 `json:"travel_time"`
	SpawnChance   float64 `json:"spawn_probability"`
	MonsterDamage float64 `json:"monster_damage"`
}

// Source yields uniform draws in [0,1) for spawn rolls.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Run tracks one delving attempt through an ordered level table.
// Progress is a per-level fraction, not a global depth counter, so the
// spawn cadence stays uniform per level regardless of table length.
type Run struct {
	id         string
	levels     []Level
	level      int
	progress   float64
	phase      Phase
	spawnTimer float64
	cleared    int
	rng        Source
}

func NewRun(id string, levels []Level, rng Source) (*Run, error) {
	if len(levels) == 0 {
		return nil, ErrInvalidRunDefinition
	}
	if rng == nil {
		rng = globalSource{}
	}
	table := make([]Level, len(levels))
	copy(table, levels)
	return &Run{
		id:     id,
		levels: table,
		phase:  PhaseDescending,
		rng:    rng,
	}, nil
}

func (r *Run) ID() string        { return r.id }
func (r *Run) Phase() Phase      { return r.phase }
func (r *Run) LevelIndex() int   { return r.level }
func (r *Run) LevelCount() int   { return len(r.levels) }
func (r *Run) Progress() float64 { return r.progress }
func (r *Run) Cleared() int      { return r.cleared }

// Exiting reports that the forward run has ended and the actor should retreat.
func (r *Run) Exiting() bool { return r.phase != PhaseDescending }

// Finished reports that the retreat has completed and the actor is back at
// the surface. A finished run is terminal.
func (r *Run) Finished() bool { return r.phase == PhaseAtSurface }

// Advance pushes the run deeper. Low vitality flips the run into its
// returning phase but does not stop progress within the same call.
// applyDamage receives monster damage from spawn rolls.
func (r *Run) Advance(dt, vitality, vitalityMax float64, applyDamage func(damage float64)) {
	if r.phase == PhaseAtSurface {
		return
	}
	if vitality < vitalityMax*earlyExitVitalityFraction {
		r.phase = PhaseReturning
	}

	lvl := r.levels[r.level]
	r.progress += dt / lvl.TravelTime

	r.spawnTimer += dt
	if r.spawnTimer >= descendSpawnPeriod {
		r.spawnTimer = 0
		if r.rng.Float64() < lvl.SpawnChance {
			applyDamage(lvl.MonsterDamage)
		}
	}

	if r.progress >= 1.0 {
		r.progress = 0
		r.cleared++
		r.level++
		if r.level >= len(r.levels) {
			// Deepest level reached; clamp and turn back.
			r.level = len(r.levels) - 1
			r.phase = PhaseReturning
		}
	}
}

// Retreat walks the run back toward the surface, re-entering each shallower
// level at its deep edge.
func (r *Run) Retreat(dt float64, applyDamage func(damage float64)) {
	if r.phase == PhaseAtSurface {
		return
	}

	lvl := r.levels[r.level]
	r.progress -= dt / lvl.TravelTime

	r.spawnTimer += dt
	if r.spawnTimer >= retreatSpawnPeriod {
		r.spawnTimer = 0
		if r.rng.Float64() < lvl.SpawnChance*retreatChanceScale {
			applyDamage(lvl.MonsterDamage)
		}
	}

	if r.progress <= 0.0 {
		r.level--
		if r.level < 0 {
			r.level = 0
			r.progress = 0
			r.phase = PhaseAtSurface
			return
		}
		r.progress = 1.0
	}
}
