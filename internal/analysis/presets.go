package analysis

import (
	"sort"

	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"
)

// Preset is a named what-if adjustment of both sides' average rates.
type Preset struct {
	Label  string  `json:"label"`
	DeltaL float64 `json:"delta_leader"`
	DeltaC float64 `json:"delta_chaser"`
}

// Presets are the stock what-if scenarios, in display order.
var Presets = []Preset{
	{Label: "Base", DeltaL: 0, DeltaC: 0},
	{Label: "Leader +0.20", DeltaL: 0.20, DeltaC: 0},
	{Label: "Leader -0.20", DeltaL: -0.20, DeltaC: 0},
	{Label: "Chaser +0.20", DeltaL: 0, DeltaC: 0.20},
	{Label: "Chaser -0.20", DeltaL: 0, DeltaC: -0.20},
	{Label: "Both +0.10", DeltaL: 0.10, DeltaC: 0.10},
	{Label: "Both -0.10", DeltaL: -0.10, DeltaC: -0.10},
	{Label: "High tempo", DeltaL: 0.15, DeltaC: 0.15},
	{Label: "Chaser collapse", DeltaL: 0.25, DeltaC: 0},
	{Label: "Derby swing", DeltaL: -0.30, DeltaC: 0.30},
}

// ApplyPreset shifts both rates of s by p, clamped to the valid rate range.
func ApplyPreset(s model.Scenario, p Preset) model.Scenario {
	return s.WithRates(
		model.ClampRate(s.PpgLeader+p.DeltaL),
		model.ClampRate(s.PpgChaser+p.DeltaC),
	)
}

// PresetResult is the clinch summary of one preset applied to a base scenario.
type PresetResult struct {
	Preset

	PpgLeader float64 `json:"ppg_leader"`
	PpgChaser float64 `json:"ppg_chaser"`

	Winner          model.Side `json:"winner"`
	WinnerClinchK   *int       `json:"winner_clinch_k"`
	ContestsFromEnd *int       `json:"contests_from_end"`
	IsFinalTie      bool       `json:"is_final_tie"`
	ExpectedFinal   model.Side `json:"expected_final"`
}

// ComparePresets evaluates every preset against base, in preset order.
func ComparePresets(base model.Scenario) []PresetResult {
	out := make([]PresetResult, 0, len(Presets))
	for _, p := range Presets {
		s := ApplyPreset(base, p)
		res := clinch.Evaluate(s)
		out = append(out, PresetResult{
			Preset:          p,
			PpgLeader:       s.PpgLeader,
			PpgChaser:       s.PpgChaser,
			Winner:          res.Winner,
			WinnerClinchK:   res.WinnerClinchK,
			ContestsFromEnd: res.ContestsFromEnd(),
			IsFinalTie:      res.IsFinalTie,
			ExpectedFinal:   res.ExpectedFinal,
		})
	}
	return out
}

// RankPresets returns a copy of results sorted so that the earliest decided
// races come first. Open races sort last; ties keep preset order.
func RankPresets(results []PresetResult) []PresetResult {
	out := make([]PresetResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].WinnerClinchK, out[j].WinnerClinchK
		switch {
		case ki == nil:
			return false
		case kj == nil:
			return true
		default:
			return *ki < *kj
		}
	})
	return out
}
