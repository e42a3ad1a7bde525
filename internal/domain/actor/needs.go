package actor

// NeedKind names a decaying resource the actor can restore at a service
// location.
type NeedKind string

const (
	NeedHeal      NeedKind = "heal"
	NeedEat       NeedKind = "eat"
	NeedSleep     NeedKind = "sleep"
	NeedEntertain NeedKind = "entertain"
)

// Needs owns the actor's vitals. Every bounded field is clamped back into its
// declared range after each mutation, so a single oversized delta self-heals
// within the same tick.
type Needs struct {
	Vitality    float64 `json:"vitality"`
	VitalityMax float64 `json:"vitality_max"`
	Stamina     float64 `json:"stamina"`
	Morale      float64 `json:"morale"`
	Hunger      float64 `json:"hunger"`
	Sleepiness  float64 `json:"sleepiness"`
	Boredom     float64 `json:"boredom"`
}

func NewNeeds() Needs {
	return Needs{
		Vitality:    100,
		VitalityMax: 100,
		Stamina:     100,
		Morale:      100,
		Hunger:      100,
		Sleepiness:  100,
		Boredom:     100,
	}
}

// Decay applies one tick of continuous decay. Hunger burns faster while the
// actor is on the move or delving; boredom barely moves inside a dungeon.
func (n *Needs) Decay(dt float64, state State) {
	base := dt * BaseDecayPerSecond

	n.Sleepiness -= base * SleepinessDecayScale

	hungerScale := HungerIdleScale
	if state == StateTravel || state == StateInDungeon {
		hungerScale = HungerActiveScale
	}
	n.Hunger -= base * hungerScale

	boredomScale := BoredomDefaultScale
	if state == StateInDungeon {
		boredomScale = BoredomDungeonScale
	}
	n.Boredom -= base * boredomScale

	n.Clamp()
}

// LowNeed returns the most urgent unmet need, if any. The order is fixed:
// vitality dominates hunger, hunger dominates sleep, sleep dominates boredom.
func (n *Needs) LowNeed() (NeedKind, bool) {
	switch {
	case n.Vitality <= LowVitalityThreshold:
		return NeedHeal, true
	case n.Hunger <= LowHungerThreshold:
		return NeedEat, true
	case n.Sleepiness <= LowSleepThreshold:
		return NeedSleep, true
	case n.Boredom <= LowBoredomThreshold:
		return NeedEntertain, true
	default:
		return "", false
	}
}

// Restore refills the resources tied to kind. Unknown kinds are a no-op.
func (n *Needs) Restore(kind NeedKind) {
	switch kind {
	case NeedSleep:
		n.Stamina = 100
		n.Sleepiness = 100
	case NeedEat:
		n.Stamina = 100
		n.Hunger = 100
	case NeedEntertain:
		n.Morale = 100
		n.Boredom = 100
	case NeedHeal:
		n.Vitality = n.VitalityMax
	}
	n.Clamp()
}

// Damage is the capability dungeon spawn rolls apply against the actor.
func (n *Needs) Damage(amount float64) {
	n.Vitality -= amount
	n.Clamp()
}

func (n *Needs) Clamp() {
	n.Vitality = clamp(n.Vitality, 0, n.VitalityMax)
	n.Stamina = clamp(n.Stamina, 0, 100)
	n.Morale = clamp(n.Morale, 0, 100)
	n.Hunger = clamp(n.Hunger, 0, 100)
	n.Sleepiness = clamp(n.Sleepiness, 0, 100)
	n.Boredom = clamp(n.Boredom, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NeedDuration returns the fixed in-place time each need takes to satisfy.
func NeedDuration(kind NeedKind) float64 {
	switch kind {
	case NeedHeal:
		return HealSeconds
	case NeedEat:
		return EatSeconds
	case NeedSleep:
		return SleepSeconds
	case NeedEntertain:
		return EntertainSeconds
	default:
		return DefaultArrivalNeedSeconds
	}
}
