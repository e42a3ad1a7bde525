package command

// LevelInput mirrors the dungeon assignment wire format: an ordered table of
// levels the run walks front to back.
type LevelInput struct {
	TravelTime    float64 `json:"travel_time"`
	SpawnChance   float64 `json:"spawn_probability"`
	MonsterDamage float64 `json:"monster_damage"`
}

type TravelRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NeedRequest struct {
	Kind    string  `json:"kind"`
	Seconds float64 `json:"seconds"`
}

type RunRequest struct {
	Levels []LevelInput `json:"levels"`
}

type RunResponse struct {
	RunID string `json:"run_id"`
}
