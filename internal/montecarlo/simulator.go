package montecarlo

import (
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"
)

// DefaultTrials is used when a caller asks for zero or fewer trials.
const DefaultTrials = 10000

// MaxVolatility is the widest jitter the presentation layers accept.
const MaxVolatility = 1.5

// Point is the clinch tally for one side at contest K.
type Point struct {
	K           int     `json:"k"`
	Trials      int     `json:"trials"`
	Count       int     `json:"count"`      // trials that clinched exactly at K
	Cumulative  int     `json:"cumulative"` // trials that clinched at or before K
	Probability float64 `json:"probability"`
}

// Curve is the empirical probability of clinching by contest k, per side.
type Curve struct {
	Trials     int     `json:"trials"`
	Volatility float64 `json:"volatility"`
	Leader     []Point `json:"leader"`
	Chaser     []Point `json:"chaser"`
	Undecided  int     `json:"undecided"`
}

// At returns side's point for contest k, if k is within the horizon.
func (c *Curve) At(side model.Side, k int) (Point, bool) {
	var pts []Point
	switch side {
	case model.SideLeader:
		pts = c.Leader
	case model.SideChaser:
		pts = c.Chaser
	}
	if k < 1 || k > len(pts) {
		return Point{}, false
	}
	return pts[k-1], true
}

// tally holds per-k clinch counts; index 0 is unused.
type tally struct {
	leader    []int
	chaser    []int
	undecided int
}

func newTally(remaining int) *tally {
	return &tally{
		leader: make([]int, remaining+1),
		chaser: make([]int, remaining+1),
	}
}

func (t *tally) add(o *tally) {
	for k := range t.leader {
		t.leader[k] += o.leader[k]
		t.chaser[k] += o.chaser[k]
	}
	t.undecided += o.undecided
}

// Simulate runs trials independent seasons of s. In each contest both sides
// score their average plus a uniform jitter in [-volatility, +volatility],
// clamped to [0, PointsPerWin]. A trial stops at the first contest after
// which either side is out of reach.
func Simulate(s model.Scenario, volatility float64, trials int, src Source) *Curve {
	trials, volatility = normalize(trials, volatility)
	t := newTally(s.Remaining)
	runTrials(s, volatility, trials, src, t)
	return buildCurve(t, trials, volatility)
}

func normalize(trials int, volatility float64) (int, float64) {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if volatility < 0 {
		volatility = 0
	}
	return trials, volatility
}

func runTrials(s model.Scenario, volatility float64, n int, src Source, t *tally) {
	for i := 0; i < n; i++ {
		side, k := runTrial(s, volatility, src)
		switch side {
		case model.SideLeader:
			t.leader[k]++
		case model.SideChaser:
			t.chaser[k]++
		default:
			t.undecided++
		}
	}
}

func runTrial(s model.Scenario, volatility float64, src Source) (model.Side, int) {
	pl, pc := s.PointsLeader, s.PointsChaser
	for k := 1; k <= s.Remaining; k++ {
		pl += draw(s.PpgLeader, volatility, src)
		pc += draw(s.PpgChaser, volatility, src)

		bounty := model.PointsPerWin * float64(s.Remaining-k)
		if clinch.Clinched(pl, pc, bounty) {
			return model.SideLeader, k
		}
		if clinch.Clinched(pc, pl, bounty) {
			return model.SideChaser, k
		}
	}
	return model.SideNone, 0
}

func draw(ppg, volatility float64, src Source) float64 {
	jitter := (src.Float64()*2 - 1) * volatility
	return model.ClampRate(ppg + jitter)
}

func buildCurve(t *tally, trials int, volatility float64) *Curve {
	remaining := len(t.leader) - 1
	c := &Curve{
		Trials:     trials,
		Volatility: volatility,
		Leader:     make([]Point, 0, remaining),
		Chaser:     make([]Point, 0, remaining),
		Undecided:  t.undecided,
	}

	cumL, cumC := 0, 0
	for k := 1; k <= remaining; k++ {
		cumL += t.leader[k]
		cumC += t.chaser[k]
		c.Leader = append(c.Leader, point(k, trials, t.leader[k], cumL))
		c.Chaser = append(c.Chaser, point(k, trials, t.chaser[k], cumC))
	}
	return c
}

func point(k, trials, count, cumulative int) Point {
	return Point{
		K:           k,
		Trials:      trials,
		Count:       count,
		Cumulative:  cumulative,
		Probability: float64(cumulative) / float64(trials) * 100,
	}
}
