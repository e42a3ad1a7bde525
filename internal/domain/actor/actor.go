package actor

import (
	"errors"
	"math"

	"delvelife/internal/domain/dungeon"
)

var ErrRunInProgress = errors.New("dungeon run already in progress")

// State labels the actor's controller state.
type State string

const (
	StateTravel         State = "travel"
	StateSatisfyingNeed State = "satisfying_need"
	StateInDungeon      State = "in_dungeon"
	StateEscaping       State = "escaping"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Places are the fixed reference points the actor routes between.
type Places struct {
	Home          Position
	Dungeon       Position
	Food          Position
	Healing       Position
	Entertainment Position
}

// PendingNeed is queued while the actor is still en route to the service
// location that satisfies it.
type PendingNeed struct {
	Kind     NeedKind
	Duration float64
}

// ActiveNeed is being satisfied in place.
type ActiveNeed struct {
	Kind      NeedKind
	Remaining float64
}

// Event is an observation the actor emits during Update. Events carry no
// control-flow meaning for the actor itself; the runtime routes them to
// whoever is listening.
type Event struct {
	Type    string
	Payload map[string]any
}

const (
	EventStatus        = "status"
	EventNeedSatisfied = "need_satisfied"
	EventRunFinished   = "run_finished"
)

// Actor is the character controller: travel motion, need seeking, and
// dungeon-run orchestration over a fixed-step update.
type Actor struct {
	name   string
	needs  Needs
	state  State
	pos    Position
	target Position
	speed  float64
	places Places

	pending *PendingNeed
	active  *ActiveNeed
	run     *dungeon.Run

	statusTimer float64
}

func New(name string, start Position, speed float64, places Places) *Actor {
	return &Actor{
		name:   name,
		needs:  NewNeeds(),
		state:  StateTravel,
		pos:    start,
		target: start,
		speed:  speed,
		places: places,
	}
}

func (a *Actor) Name() string   { return a.name }
func (a *Actor) State() State   { return a.state }
func (a *Actor) Needs() Needs   { return a.needs }
func (a *Actor) Places() Places { return a.places }

func (a *Actor) Position() Position { return a.pos }
func (a *Actor) Target() Position   { return a.target }

func (a *Actor) Pending() *PendingNeed {
	if a.pending == nil {
		return nil
	}
	p := *a.pending
	return &p
}

func (a *Actor) Active() *ActiveNeed {
	if a.active == nil {
		return nil
	}
	n := *a.active
	return &n
}

// Run returns the current dungeon run, nil outside InDungeon/Escaping.
func (a *Actor) Run() *dungeon.Run { return a.run }

// SetTravel redirects travel. Orders are accepted at any time; a new order
// simply overwrites the previous target on the next tick.
func (a *Actor) SetTravel(dest Position) {
	a.target = dest
}

// StartNeed begins satisfying a need in place. Ignored while delving or
// escaping, where the actor cannot stop.
func (a *Actor) StartNeed(kind NeedKind, duration float64) {
	if a.state == StateInDungeon || a.state == StateEscaping {
		return
	}
	a.active = &ActiveNeed{Kind: kind, Remaining: duration}
	a.state = StateSatisfyingNeed
}

// BeginDungeonRun pins the actor to the dungeon entrance and starts delving.
// Starting a second run while one is active is rejected.
func (a *Actor) BeginDungeonRun(run *dungeon.Run) error {
	if a.state == StateInDungeon || a.state == StateEscaping {
		return ErrRunInProgress
	}
	a.run = run
	a.state = StateInDungeon
	a.pos = a.places.Dungeon
	return nil
}

// Update advances the actor by dt seconds of sim time and returns the
// observations emitted along the way.
func (a *Actor) Update(dt float64) []Event {
	var events []Event

	a.needs.Decay(dt, a.state)

	switch a.state {
	case StateTravel:
		a.updateTravel(dt)
	case StateSatisfyingNeed:
		events = a.updateNeed(dt, events)
	case StateInDungeon:
		// Pinned to the entrance for the whole run.
		a.pos = a.places.Dungeon
		a.run.Advance(dt, a.needs.Vitality, a.needs.VitalityMax, a.needs.Damage)
		if a.run.Exiting() {
			a.state = StateEscaping
		}
	case StateEscaping:
		a.pos = a.places.Dungeon
		a.run.Retreat(dt, a.needs.Damage)
		if a.run.Finished() {
			run := a.run
			a.run = nil
			a.state = StateTravel
			a.target = a.places.Home
			events = append(events, Event{
				Type: EventRunFinished,
				Payload: map[string]any{
					"run_id":  run.ID(),
					"levels":  run.LevelCount(),
					"cleared": run.Cleared(),
					"aborted": run.Cleared() < run.LevelCount(),
				},
			})
		}
	}

	a.statusTimer += dt
	if a.statusTimer >= StatusInterval {
		a.statusTimer = 0
		events = append(events, a.statusEvent())
	}
	return events
}

func (a *Actor) updateTravel(dt float64) {
	// Need seeking only runs when nothing is queued or active, so a need is
	// never pre-empted mid-seek or mid-satisfaction.
	if a.pending == nil && a.active == nil {
		if kind, ok := a.needs.LowNeed(); ok {
			a.pending = &PendingNeed{Kind: kind, Duration: NeedDuration(kind)}
			a.target = a.needDestination(kind)
		}
	}

	dx := a.target.X - a.pos.X
	dy := a.target.Y - a.pos.Y
	dist := math.Hypot(dx, dy)
	if dist > ArrivalEpsilon {
		step := a.speed * dt
		if step >= dist {
			a.pos = a.target
		} else {
			a.pos.X += dx / dist * step
			a.pos.Y += dy / dist * step
		}
		return
	}

	// Arrived. Undirected travel still earns a short breather.
	if a.pending != nil {
		a.active = &ActiveNeed{Kind: a.pending.Kind, Remaining: a.pending.Duration}
		a.pending = nil
	} else {
		a.active = &ActiveNeed{Kind: NeedSleep, Remaining: DefaultArrivalNeedSeconds}
	}
	a.state = StateSatisfyingNeed
}

func (a *Actor) updateNeed(dt float64, events []Event) []Event {
	a.active.Remaining -= dt
	if a.active.Remaining > 0 {
		return events
	}
	kind := a.active.Kind
	a.needs.Restore(kind)
	a.active = nil
	a.pending = nil
	a.state = StateTravel
	return append(events, Event{
		Type:    EventNeedSatisfied,
		Payload: map[string]any{"kind": string(kind)},
	})
}

func (a *Actor) needDestination(kind NeedKind) Position {
	switch kind {
	case NeedEat:
		return a.places.Food
	case NeedEntertain:
		return a.places.Entertainment
	case NeedHeal:
		return a.places.Healing
	case NeedSleep:
		return a.places.Home
	default:
		return a.places.Home
	}
}

func (a *Actor) statusEvent() Event {
	return Event{
		Type: EventStatus,
		Payload: map[string]any{
			"name":       a.name,
			"x":          math.Round(a.pos.X),
			"y":          math.Round(a.pos.Y),
			"state":      string(a.state),
			"vitality":   a.needs.Vitality,
			"hunger":     a.needs.Hunger,
			"sleepiness": a.needs.Sleepiness,
			"boredom":    a.needs.Boredom,
		},
	}
}
