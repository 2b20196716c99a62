package model

// Default display labels for blank names.
const (
	DefaultLeaderName = "Leader"
	DefaultChaserName = "Chaser"
)

// PointsPerWin is the most points a side can take from a single contest.
// It bounds how far a trailing side can still climb.
const PointsPerWin = 3.0

// MaxRate is the upper bound of an average points-per-contest rate.
const MaxRate = PointsPerWin

// Epsilon is the absolute tolerance used by every clinch and tie comparison.
const Epsilon = 1e-9

// Scenario is a validated race state: two sides, their current points,
// how many contests are left, and the average rate each side earns.
//
// Units:
// - Points*: accumulated standings points (>= 0)
// - Remaining: contests left for both sides
// - Ppg*: average points per contest, within [0, MaxRate]
type Scenario struct {
	LeaderName string `json:"leader_name" yaml:"leader_name"`
	ChaserName string `json:"chaser_name" yaml:"chaser_name"`

	PointsLeader float64 `json:"points_leader" yaml:"points_leader"`
	PointsChaser float64 `json:"points_chaser" yaml:"points_chaser"`

	Remaining int `json:"remaining" yaml:"remaining"`

	PpgLeader float64 `json:"ppg_leader" yaml:"ppg_leader"`
	PpgChaser float64 `json:"ppg_chaser" yaml:"ppg_chaser"`

	PointsPerWin float64 `json:"points_per_win" yaml:"-"`
}

// WithRates returns a copy of s with both rates replaced.
func (s Scenario) WithRates(ppgLeader, ppgChaser float64) Scenario {
	s.PpgLeader = ppgLeader
	s.PpgChaser = ppgChaser
	return s
}

// Name returns the display label for side.
func (s Scenario) Name(side Side) string {
	switch side {
	case SideLeader:
		return s.LeaderName
	case SideChaser:
		return s.ChaserName
	default:
		return ""
	}
}

// ClampRate bounds a rate to [0, MaxRate].
func ClampRate(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > MaxRate {
		return MaxRate
	}
	return x
}

// Capabilities is the presentation layer's view of what a caller may see.
// The engine packages never read it.
type Capabilities struct {
	Pro bool `json:"pro"`
}
