package ports

import (
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"
)

// RunStatus is the observable slice of an in-flight dungeon run.
type RunStatus struct {
	ID         string
	Phase      dungeon.Phase
	LevelIndex int
	LevelCount int
	Progress   float64
	Cleared    int
}

// SimSnapshot is a read-only observation of the actor; it carries no
// control-flow meaning.
type SimSnapshot struct {
	Name     string
	State    actor.State
	Position actor.Position
	Target   actor.Position
	Needs    actor.Needs
	Pending  *actor.PendingNeed
	Active   *actor.ActiveNeed
	Run      *RunStatus
}

// Simulation is the command/observation boundary between the app layer and
// the tick-driven runtime. Commands are accepted at any time; none of them
// block.
type Simulation interface {
	Snapshot() SimSnapshot
	SetTravel(dest actor.Position)
	StartNeed(kind actor.NeedKind, seconds float64)
	BeginRun(levels []dungeon.Level) (runID string, err error)
	Assign(levels []dungeon.Level) error
}
