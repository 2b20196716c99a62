package analysis

import (
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"
)

const (
	// SweepStep is the rate perturbation between adjacent grid cells.
	SweepStep = 0.1
	// SweepRange is the number of steps on each side of the base rate.
	SweepRange = 4
	// SweepSide is the width of the square grid.
	SweepSide = 2*SweepRange + 1
)

// Cell is one point of the sensitivity grid: a perturbed rate pair and the
// clinch outcome it produces. I and J are the leader and chaser step offsets.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`

	PpgLeader float64 `json:"ppg_leader"`
	PpgChaser float64 `json:"ppg_chaser"`

	Winner          model.Side `json:"winner"`
	WinnerClinchK   *int       `json:"winner_clinch_k"`
	ContestsFromEnd *int       `json:"contests_from_end"`
	IsFinalTie      bool       `json:"is_final_tie"`
}

// Sweep evaluates base over a SweepSide x SweepSide lattice of rates.
// Cells are ordered row-major: the leader offset I is the outer loop and the
// chaser offset J the inner one, both running from -SweepRange to +SweepRange.
func Sweep(base model.Scenario) []Cell {
	cells := make([]Cell, 0, SweepSide*SweepSide)
	for i := -SweepRange; i <= SweepRange; i++ {
		for j := -SweepRange; j <= SweepRange; j++ {
			ppgL := model.ClampRate(base.PpgLeader + float64(i)*SweepStep)
			ppgC := model.ClampRate(base.PpgChaser + float64(j)*SweepStep)
			out := clinch.Evaluate(base.WithRates(ppgL, ppgC))

			cells = append(cells, Cell{
				I:               i,
				J:               j,
				PpgLeader:       ppgL,
				PpgChaser:       ppgC,
				Winner:          out.Winner,
				WinnerClinchK:   out.WinnerClinchK,
				ContestsFromEnd: out.ContestsFromEnd(),
				IsFinalTie:      out.IsFinalTie,
			})
		}
	}
	return cells
}

// Grid reshapes the flat Sweep output into rows indexed by leader offset.
func Grid(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, SweepSide)
	for start := 0; start < len(cells); start += SweepSide {
		end := start + SweepSide
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}
