package models

import (
	"clinch-calc/internal/analysis"
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"
	"clinch-calc/internal/montecarlo"
)

// ClinchResponse represents the response from a clinch evaluation
type ClinchResponse struct {
	Scenario model.Scenario   `json:"scenario"`
	Summary  ClinchSummary    `json:"summary"`
	Rows     []clinch.StepRow `json:"rows"`

	// Truncated is set when the caller's tier only sees the first rows
	Truncated bool `json:"truncated"`
	TotalRows int  `json:"total_rows"`
}

// ClinchSummary contains the aggregated clinch verdict
type ClinchSummary struct {
	Status          model.Status `json:"status"`
	Winner          model.Side   `json:"winner"`
	WinnerName      string       `json:"winner_name,omitempty"`
	WinnerClinchK   *int         `json:"winner_clinch_k"`
	ContestsFromEnd *int         `json:"contests_from_end"`
	LeaderClinchK   *int         `json:"leader_clinch_k"`
	ChaserClinchK   *int         `json:"chaser_clinch_k"`
	IsFinalTie      bool         `json:"is_final_tie"`
	ExpectedFinal   model.Side   `json:"expected_final"`
}

// NewClinchSummary builds the summary block for an outcome
func NewClinchSummary(s model.Scenario, o *clinch.Outcome) ClinchSummary {
	return ClinchSummary{
		Status:          model.StatusFromClinched(o.Decided()),
		Winner:          o.Winner,
		WinnerName:      s.Name(o.Winner),
		WinnerClinchK:   o.WinnerClinchK,
		ContestsFromEnd: o.ContestsFromEnd(),
		LeaderClinchK:   o.LeaderClinchK,
		ChaserClinchK:   o.ChaserClinchK,
		IsFinalTie:      o.IsFinalTie,
		ExpectedFinal:   o.ExpectedFinal,
	}
}

// SensitivityResponse represents the rate sweep grid
type SensitivityResponse struct {
	Scenario model.Scenario  `json:"scenario"`
	Step     float64         `json:"step"`
	Side     int             `json:"side"`
	Cells    []analysis.Cell `json:"cells"`
}

// PresetsResponse lists what-if presets in display order and ranked
type PresetsResponse struct {
	Scenario model.Scenario          `json:"scenario"`
	Results  []analysis.PresetResult `json:"results"`
	Ranking  []analysis.PresetResult `json:"ranking"`
}

// MonteCarloResponse represents a simulated clinch probability curve
type MonteCarloResponse struct {
	Scenario model.Scenario    `json:"scenario"`
	Seed     uint64            `json:"seed"`
	Curve    *montecarlo.Curve `json:"curve"`
}

// ShareResponse carries an encoded scenario link
type ShareResponse struct {
	Query string `json:"query"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
