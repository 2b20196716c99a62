package main

import (
	"fmt"
	"os"
	"path/filepath"

	"clinch-calc/internal/clinch"
	"clinch-calc/internal/model"

	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Project the race and report when it is decided",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			out := clinch.Evaluate(s)

			if path, _ := cmd.Flags().GetString("out"); path != "" {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				if err := clinch.WriteTraceCSV(path, out.Rows); err != nil {
					return fmt.Errorf("failed to write trace: %w", err)
				}
				cmdLogger(cmd).Info("wrote trace", "rows", len(out.Rows), "path", path)
			}

			w := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return writeJSON(w, struct {
					Scenario model.Scenario `json:"scenario"`
					*clinch.Outcome
				}{s, out})
			}
			rows, _ := cmd.Flags().GetInt("rows")
			return renderer(cmd).Outcome(w, s, out, rows)
		},
	}

	cmd.Flags().String("out", "", "Also write the full trace as CSV to this path")
	cmd.Flags().Int("rows", 0, "Show at most N trace rows (0 = all)")
	return cmd
}
