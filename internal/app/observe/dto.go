package observe

import "delvelife/internal/domain/actor"

type Response struct {
	Name          string         `json:"name"`
	State         actor.State    `json:"state"`
	Position      actor.Position `json:"position"`
	Target        actor.Position `json:"target"`
	Needs         actor.Needs    `json:"needs"`
	PendingNeed   *NeedView      `json:"pending_need,omitempty"`
	ActiveNeed    *NeedView      `json:"active_need,omitempty"`
	Run           *RunView       `json:"run,omitempty"`
	RewardBalance int            `json:"reward_balance"`
}

type NeedView struct {
	Kind    string  `json:"kind"`
	Seconds float64 `json:"seconds"`
}

type RunView struct {
	ID         string  `json:"id"`
	Phase      string  `json:"phase"`
	LevelIndex int     `json:"level_index"`
	LevelCount int     `json:"level_count"`
	Progress   float64 `json:"progress"`
	Cleared    int     `json:"cleared"`
}
