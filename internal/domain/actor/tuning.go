package actor

const (
	// Needs decay: one second of sim time burns BaseDecayPerSecond points,
	// scaled per need and per actor state.
	BaseDecayPerSecond   = 2.0
	SleepinessDecayScale = 0.5
	HungerActiveScale    = 2.0
	HungerIdleScale      = 1.0
	BoredomDungeonScale  = 0.5
	BoredomDefaultScale  = 1.5

	// Thresholds the decision tick checks, survival-first. Vitality dominates
	// every other need.
	LowVitalityThreshold = 50.0
	LowHungerThreshold   = 30.0
	LowSleepThreshold    = 30.0
	LowBoredomThreshold  = 30.0

	// Travel arrival tolerance, in world distance units.
	ArrivalEpsilon = 5.0

	// Arriving anywhere without a queued need costs a short breather.
	DefaultArrivalNeedSeconds = 2.0

	// Time spent in place satisfying each need.
	HealSeconds      = 6.0
	EatSeconds       = 3.0
	SleepSeconds     = 5.0
	EntertainSeconds = 4.0

	// Seconds of sim time between status observations.
	StatusInterval = 1.0
)
