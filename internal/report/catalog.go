package report

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgClinched      = "%s clinches with %d contests to go (after %d more)."
	msgClinchDetail  = "%s %.2f pts, %s %.2f pts, gap %.2f, max bounty %.2f."
	msgOpen          = "No mathematical verdict within %d contests."
	msgFinalTie      = "Level on points at the end: only a tie-break rule can decide it."
	msgProjection    = "At current averages (no guarantee) %s finishes ahead."
	msgProjectionTie = "At current averages (no guarantee) both sides finish level."
	msgTableHeader   = "step\tk\tR\t%s\t%s\tgap\tbounty\tstatus\t"
	msgStatusChamp   = "champion %s"
	msgStatusOpen    = "open"
	msgRowsHidden    = "%d more rows hidden."
	msgSweepTitle    = "Contests from the end at which the race is decided (rows: %s ppg, columns: %s ppg)"
	msgPresetsTitle  = "What-if presets"
	msgPresetOpen    = "%s\t%.2f\t%.2f\topen\t"
	msgPresetDecided = "%s\t%.2f\t%.2f\t%s, %d from the end\t"
	msgCurveTitle    = "Probability of clinching within k contests (%d trials, volatility %.2f)"
	msgCurveRow      = "k=%d\t%s %.1f%%\t%s %.1f%%\t"
	msgUndecided     = "Undecided at the end: %.1f%%"
)

func init() {
	var errs []error
	for _, key := range []string{
		msgClinched, msgClinchDetail, msgOpen, msgFinalTie, msgProjection,
		msgProjectionTie, msgTableHeader, msgStatusChamp, msgStatusOpen,
		msgRowsHidden, msgSweepTitle, msgPresetsTitle, msgPresetOpen,
		msgPresetDecided, msgCurveTitle, msgCurveRow, msgUndecided,
	} {
		errs = append(errs, message.SetString(language.English, key, key))
	}

	for key, msg := range map[string]string{
		msgClinched:      "%s campione con %d partite dalla fine (tra %d partite).",
		msgClinchDetail:  "%s %.2fpt, %s %.2fpt, gap %.2f, bottino max %.2f.",
		msgOpen:          "Nessun verdetto matematico entro %d partite.",
		msgFinalTie:      "Arrivo a pari punti: decidono i criteri di spareggio.",
		msgProjection:    "Alle medie attuali (senza garanzia) chiude davanti %s.",
		msgProjectionTie: "Alle medie attuali (senza garanzia) chiudono a pari punti.",
		msgTableHeader:   "step\tk\tR\t%s\t%s\tgap\tbottino\tstato\t",
		msgStatusChamp:   "campione %s",
		msgStatusOpen:    "in corso",
		msgRowsHidden:    "Altre %d righe nascoste.",
		msgSweepTitle:    "Partite dalla fine al verdetto (righe: media %s, colonne: media %s)",
		msgPresetsTitle:  "Scenari what-if",
		msgPresetOpen:    "%s\t%.2f\t%.2f\taperto\t",
		msgPresetDecided: "%s\t%.2f\t%.2f\t%s, %d dalla fine\t",
		msgCurveTitle:    "Probabilità di clinch entro k partite (%d simulazioni, volatilità %.2f)",
		msgCurveRow:      "k=%d\t%s %.1f%%\t%s %.1f%%\t",
		msgUndecided:     "Indecise a fine stagione: %.1f%%",
	} {
		errs = append(errs, message.SetString(language.Italian, key, msg))
	}
	if err := errors.Join(errs...); err != nil {
		panic(fmt.Sprintf("report: register messages: %v", err))
	}
}
