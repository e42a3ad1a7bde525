package runtime

import (
	"errors"
	"sync"
	"time"

	"delvelife/internal/app/ports"
	"delvelife/internal/domain/actor"
	"delvelife/internal/domain/dungeon"

	"github.com/google/uuid"
)

var ErrNoOrchestrator = errors.New("no orchestrator configured")

// Observer receives journal entries synchronously as the loop emits them.
// Register all observers before Start.
type Observer func(entry ports.JournalEntry)

type Config struct {
	Actor        *actor.Actor
	Orchestrator *Orchestrator
	TickInterval time.Duration
	RNG          dungeon.Source
	NewID        func() string
	Now          func() time.Time
}

// Sim drives one actor with a fixed-step update. The actor is only touched
// from the loop goroutine and from command handlers holding the mutex, so
// the cooperative single-threaded model of the domain is preserved.
type Sim struct {
	mu    sync.Mutex
	actor *actor.Actor
	orch  *Orchestrator
	rng   dungeon.Source
	newID func() string
	now   func() time.Time
	tick  time.Duration

	observers []Observer

	stop chan struct{}
	done chan struct{}
}

func New(cfg Config) *Sim {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sim{
		actor: cfg.Actor,
		orch:  cfg.Orchestrator,
		rng:   cfg.RNG,
		newID: cfg.NewID,
		now:   cfg.Now,
		tick:  cfg.TickInterval,
	}
}

func (s *Sim) RegisterObserver(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Sim) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop()
}

func (s *Sim) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sim) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	dt := s.tick.Seconds()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

// Step advances the sim by dt seconds: actor update first, then one
// cooperative orchestrator step. Exposed so tests can drive time directly.
func (s *Sim) Step(dt float64) {
	s.mu.Lock()
	events := s.actor.Update(dt)
	entries := make([]ports.JournalEntry, 0, len(events))
	for _, evt := range events {
		entries = append(entries, s.entry(evt.Type, evt.Payload))
	}
	if s.orch != nil {
		entries = append(entries, s.orch.step(s)...)
	}
	s.mu.Unlock()

	// Outside the lock: the grant hits a repository and observers may read
	// the sim back.
	if s.orch != nil {
		entries = append(entries, s.orch.settle(s, events)...)
	}
	for _, e := range entries {
		s.broadcast(e)
	}
}

func (s *Sim) broadcast(e ports.JournalEntry) {
	for _, fn := range s.observers {
		fn(e)
	}
}

func (s *Sim) entry(typ string, payload map[string]any) ports.JournalEntry {
	return ports.JournalEntry{
		ID:         s.newID(),
		Type:       typ,
		OccurredAt: s.now(),
		Payload:    payload,
	}
}

func (s *Sim) Snapshot() ports.SimSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := ports.SimSnapshot{
		Name:     s.actor.Name(),
		State:    s.actor.State(),
		Position: s.actor.Position(),
		Target:   s.actor.Target(),
		Needs:    s.actor.Needs(),
		Pending:  s.actor.Pending(),
		Active:   s.actor.Active(),
	}
	if run := s.actor.Run(); run != nil {
		snap.Run = &ports.RunStatus{
			ID:         run.ID(),
			Phase:      run.Phase(),
			LevelIndex: run.LevelIndex(),
			LevelCount: run.LevelCount(),
			Progress:   run.Progress(),
			Cleared:    run.Cleared(),
		}
	}
	return snap
}

func (s *Sim) SetTravel(dest actor.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor.SetTravel(dest)
}

func (s *Sim) StartNeed(kind actor.NeedKind, seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor.StartNeed(kind, seconds)
}

func (s *Sim) BeginRun(levels []dungeon.Level) (string, error) {
	s.mu.Lock()
	run, err := dungeon.NewRun(s.newID(), levels, s.rng)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if err := s.actor.BeginDungeonRun(run); err != nil {
		s.mu.Unlock()
		return "", err
	}
	started := s.entry(EventRunStarted, map[string]any{
		"run_id": run.ID(),
		"levels": run.LevelCount(),
	})
	s.mu.Unlock()

	s.broadcast(started)
	return run.ID(), nil
}

func (s *Sim) Assign(levels []dungeon.Level) error {
	if len(levels) == 0 {
		return dungeon.ErrInvalidRunDefinition
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orch == nil {
		return ErrNoOrchestrator
	}
	s.orch.enqueue(levels)
	return nil
}
