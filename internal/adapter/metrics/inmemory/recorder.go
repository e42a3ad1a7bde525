package inmemory

import (
	"sync"

	"delvelife/internal/domain/actor"
)

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandAccepted uint64            `json:"command_accepted"`
	CommandRejected uint64            `json:"command_rejected"`
	ByCommand       map[string]uint64 `json:"by_command"`
	RunsStarted     uint64            `json:"runs_started"`
	RunsCleared     uint64            `json:"runs_cleared"`
	RunsAborted     uint64            `json:"runs_aborted"`
	NeedsSatisfied  map[string]uint64 `json:"needs_satisfied"`
}

type Recorder struct {
	mu        sync.Mutex
	accepted  uint64
	rejected  uint64
	byCommand map[string]uint64
	started   uint64
	cleared   uint64
	aborted   uint64
	needs     map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand: map[string]uint64{},
		needs:     map[string]uint64{},
	}
}

func (r *Recorder) RecordCommand(kind string, accepted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if accepted {
		r.accepted++
	} else {
		r.rejected++
	}
	r.byCommand[kind]++
}

func (r *Recorder) RecordRunStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *Recorder) RecordRunFinished(aborted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if aborted {
		r.aborted++
	} else {
		r.cleared++
	}
}

func (r *Recorder) RecordNeedSatisfied(kind actor.NeedKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needs[string(kind)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandAccepted: r.accepted,
		CommandRejected: r.rejected,
		CommandTotal:    r.accepted + r.rejected,
		ByCommand:       make(map[string]uint64, len(r.byCommand)),
		RunsStarted:     r.started,
		RunsCleared:     r.cleared,
		RunsAborted:     r.aborted,
		NeedsSatisfied:  make(map[string]uint64, len(r.needs)),
	}
	for k, v := range r.byCommand {
		out.ByCommand[k] = v
	}
	for k, v := range r.needs {
		out.NeedsSatisfied[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
