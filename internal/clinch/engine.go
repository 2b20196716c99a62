package clinch

import (
	"fmt"
	"math"

	"clinch-calc/internal/model"
)

// Clinched reports whether a side on `own` points can no longer be caught by
// a side on `other` points that still has `bounty` points available.
func Clinched(own, other, bounty float64) bool {
	return own > other+bounty+model.Epsilon
}

// Evaluate projects s forward one contest at a time at each side's average
// rate and records, for k = 0..Remaining, whether either side is out of reach.
func Evaluate(s model.Scenario) *Outcome {
	ppw := s.PointsPerWin
	if ppw == 0 {
		ppw = model.PointsPerWin
	}

	rows := make([]StepRow, 0, s.Remaining+1)
	out := &Outcome{Remaining: s.Remaining}

	for k := 0; k <= s.Remaining; k++ {
		r := s.Remaining - k
		pl := s.PointsLeader + float64(k)*s.PpgLeader
		pc := s.PointsChaser + float64(k)*s.PpgChaser
		gap := pl - pc
		bounty := ppw * float64(r)

		row := StepRow{
			Step: k + 1,
			K:    k,
			R:    r,

			LeaderPoints: pl,
			ChaserPoints: pc,

			Gap:    gap,
			Bounty: bounty,

			LeaderClinched: Clinched(pl, pc, bounty),
			ChaserClinched: Clinched(pc, pl, bounty),

			IsFinalTie: r == 0 && math.Abs(gap) < model.Epsilon,
		}
		if row.LeaderClinched && out.LeaderClinchK == nil {
			out.LeaderClinchK = intPtr(k)
		}
		if row.ChaserClinched && out.ChaserClinchK == nil {
			out.ChaserClinchK = intPtr(k)
		}
		rows = append(rows, row)
	}

	out.Rows = rows
	out.Winner, out.WinnerClinchK = pickWinner(out.LeaderClinchK, out.ChaserClinchK)

	last := rows[len(rows)-1]
	out.IsFinalTie = last.IsFinalTie
	out.ExpectedFinal = expectedFinal(last.Gap)
	return out
}

// pickWinner resolves the two first-clinch steps. Both sides clinching at the
// same k would need gap > bounty and -gap > bounty at once, which cannot happen
// with a non-negative bounty, so it is treated as a broken invariant.
func pickWinner(leaderK, chaserK *int) (model.Side, *int) {
	switch {
	case leaderK != nil && chaserK != nil:
		if *leaderK == *chaserK {
			panic(fmt.Errorf("clinch: both sides clinched at k=%d", *leaderK))
		}
		if *leaderK < *chaserK {
			return model.SideLeader, leaderK
		}
		return model.SideChaser, chaserK
	case leaderK != nil:
		return model.SideLeader, leaderK
	case chaserK != nil:
		return model.SideChaser, chaserK
	default:
		return model.SideNone, nil
	}
}

func expectedFinal(gap float64) model.Side {
	switch {
	case math.Abs(gap) < model.Epsilon:
		return model.SideTie
	case gap > 0:
		return model.SideLeader
	default:
		return model.SideChaser
	}
}

func intPtr(v int) *int { return &v }
