package clinch

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"clinch-calc/internal/model"
)

var traceHeader = []string{
	"step",
	"k",
	"r",
	"leader_points",
	"chaser_points",
	"gap",
	"bounty",
	"leader_status",
	"chaser_status",
	"final_tie",
}

func WriteTraceCSV(path string, rows []StepRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeTraceCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// EncodeTraceCSV writes rows with a header line to w.
func EncodeTraceCSV(w io.Writer, rows []StepRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Step),
			strconv.Itoa(r.K),
			strconv.Itoa(r.R),
			fmtFloat(r.LeaderPoints),
			fmtFloat(r.ChaserPoints),
			fmtFloat(r.Gap),
			fmtFloat(r.Bounty),
			string(model.StatusFromClinched(r.LeaderClinched)),
			string(model.StatusFromClinched(r.ChaserClinched)),
			strconv.FormatBool(r.IsFinalTie),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
