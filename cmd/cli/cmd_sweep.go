package main

import (
	"clinch-calc/internal/analysis"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Show how the verdict moves as both average rates shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			cells := analysis.Sweep(s)
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), cells)
			}
			return renderer(cmd).Sweep(cmd.OutOrStdout(), s, cells)
		},
	}
}
