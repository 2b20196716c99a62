// Package report renders engine results as localized plain text for the CLI.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"clinch-calc/internal/analysis"
	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"
	"clinch-calc/internal/montecarlo"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer writes reports in one language.
type Renderer struct {
	p *message.Printer
}

// New returns a Renderer for lang (a BCP 47 tag such as "en" or "it").
// Unparseable tags fall back to English.
func New(lang string) *Renderer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Renderer{p: message.NewPrinter(tag)}
}

// Outcome writes the clinch verdict and up to maxRows trace rows.
// maxRows <= 0 writes every row.
func (r *Renderer) Outcome(w io.Writer, s model.Scenario, o *clinch.Outcome, maxRows int) error {
	p := r.p

	if row, ok := o.ClinchRow(); ok {
		p.Fprintf(w, msgClinched, s.Name(o.Winner), *o.ContestsFromEnd(), *o.WinnerClinchK)
		fmt.Fprintln(w)
		p.Fprintf(w, msgClinchDetail, s.LeaderName, row.LeaderPoints, s.ChaserName, row.ChaserPoints, row.Gap, row.Bounty)
		fmt.Fprintln(w)
	} else {
		p.Fprintf(w, msgOpen, s.Remaining)
		fmt.Fprintln(w)
	}

	if o.IsFinalTie {
		p.Fprintf(w, msgFinalTie)
		fmt.Fprintln(w)
	}
	if o.ExpectedFinal == model.SideTie {
		p.Fprintf(w, msgProjectionTie)
	} else {
		p.Fprintf(w, msgProjection, s.Name(o.ExpectedFinal))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	rows := o.Rows
	hidden := 0
	if maxRows > 0 && len(rows) > maxRows {
		hidden = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p.Fprintf(tw, msgTableHeader, s.LeaderName, s.ChaserName)
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Step, row.K, row.R,
			p.Sprintf("%.2f", row.LeaderPoints),
			p.Sprintf("%.2f", row.ChaserPoints),
			p.Sprintf("%.2f", row.Gap),
			p.Sprintf("%.0f", row.Bounty),
			r.status(s, row),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if hidden > 0 {
		p.Fprintf(w, msgRowsHidden, hidden)
		fmt.Fprintln(w)
	}
	return nil
}

func (r *Renderer) status(s model.Scenario, row clinch.StepRow) string {
	switch {
	case row.LeaderClinched:
		return r.p.Sprintf(msgStatusChamp, s.LeaderName)
	case row.ChaserClinched:
		return r.p.Sprintf(msgStatusChamp, s.ChaserName)
	default:
		return r.p.Sprintf(msgStatusOpen)
	}
}

// Sweep writes the sensitivity grid as a matrix of contests-from-the-end,
// with "-" for rate pairs that leave the race open.
func (r *Renderer) Sweep(w io.Writer, s model.Scenario, cells []analysis.Cell) error {
	p := r.p
	p.Fprintf(w, msgSweepTitle, s.LeaderName, s.ChaserName)
	fmt.Fprintln(w)

	grid := analysis.Grid(cells)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if len(grid) > 0 {
		fmt.Fprint(tw, "\t")
		for _, c := range grid[0] {
			fmt.Fprint(tw, p.Sprintf("%.2f", c.PpgChaser), "\t")
		}
		fmt.Fprintln(tw)
	}
	for _, row := range grid {
		if len(row) == 0 {
			continue
		}
		fmt.Fprint(tw, p.Sprintf("%.2f", row[0].PpgLeader), "\t")
		for _, c := range row {
			if c.ContestsFromEnd == nil {
				fmt.Fprint(tw, "-\t")
			} else {
				fmt.Fprintf(tw, "%d\t", *c.ContestsFromEnd)
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Presets writes one line per what-if preset.
func (r *Renderer) Presets(w io.Writer, s model.Scenario, results []analysis.PresetResult) error {
	p := r.p
	p.Fprintf(w, msgPresetsTitle)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, res := range results {
		if res.ContestsFromEnd == nil {
			p.Fprintf(tw, msgPresetOpen, res.Label, res.PpgLeader, res.PpgChaser)
		} else {
			p.Fprintf(tw, msgPresetDecided, res.Label, res.PpgLeader, res.PpgChaser, s.Name(res.Winner), *res.ContestsFromEnd)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Curve writes the Monte Carlo cumulative probabilities. Rows where neither
// side gains probability are skipped after the first five, as they add
// nothing to read.
func (r *Renderer) Curve(w io.Writer, s model.Scenario, c *montecarlo.Curve) error {
	p := r.p
	p.Fprintf(w, msgCurveTitle, c.Trials, c.Volatility)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := range c.Leader {
		l, ch := c.Leader[i], c.Chaser[i]
		if l.K > 5 && l.Count == 0 && ch.Count == 0 {
			continue
		}
		p.Fprintf(tw, msgCurveRow, l.K, s.LeaderName, l.Probability, s.ChaserName, ch.Probability)
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p.Fprintf(w, msgUndecided, float64(c.Undecided)/float64(c.Trials)*100)
	fmt.Fprintln(w)
	return nil
}
