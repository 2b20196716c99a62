package clinch

import "clinch-calc/internal/model"

// StepRow is one row of the projected race, after K contests have elapsed.
// The full row sequence is the primary artifact for "how the race unfolds".
type StepRow struct {
	Step int `json:"step"` // 1-based display index
	K    int `json:"k"`
	R    int `json:"r"` // contests still to play after K

	LeaderPoints float64 `json:"leader_points"`
	ChaserPoints float64 `json:"chaser_points"`

	Gap    float64 `json:"gap"`    // leader minus chaser
	Bounty float64 `json:"bounty"` // PointsPerWin * R

	LeaderClinched bool `json:"leader_clinched"`
	ChaserClinched bool `json:"chaser_clinched"`

	IsFinalTie bool `json:"is_final_tie"`
}

// Outcome is the aggregate result of Evaluate.
type Outcome struct {
	Winner        model.Side `json:"winner"`
	WinnerClinchK *int       `json:"winner_clinch_k"`
	LeaderClinchK *int       `json:"leader_clinch_k"`
	ChaserClinchK *int       `json:"chaser_clinch_k"`

	IsFinalTie bool `json:"is_final_tie"`

	// ExpectedFinal is who finishes ahead if both sides keep their current
	// average. It is a projection, not a clinch.
	ExpectedFinal model.Side `json:"expected_final"`

	Remaining int       `json:"remaining"`
	Rows      []StepRow `json:"rows"`
}

// Decided reports whether either side clinches within the horizon.
func (o *Outcome) Decided() bool {
	return o.Winner != model.SideNone
}

// ContestsFromEnd is how many contests remain when the winner clinches.
// It is nil when the race stays open.
func (o *Outcome) ContestsFromEnd() *int {
	if o.WinnerClinchK == nil {
		return nil
	}
	n := o.Remaining - *o.WinnerClinchK
	return &n
}

// ClinchRow returns the row at which the winner clinched.
func (o *Outcome) ClinchRow() (StepRow, bool) {
	if o.WinnerClinchK == nil || *o.WinnerClinchK >= len(o.Rows) {
		return StepRow{}, false
	}
	return o.Rows[*o.WinnerClinchK], true
}
