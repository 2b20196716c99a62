package main

import (
	"clinch-calc/internal/analysis"

	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Compare the stock what-if scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			results := analysis.ComparePresets(s)
			if ranked, _ := cmd.Flags().GetBool("rank"); ranked {
				results = analysis.RankPresets(results)
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return renderer(cmd).Presets(cmd.OutOrStdout(), s, results)
		},
	}

	cmd.Flags().Bool("rank", false, "Order by earliest clinch instead of preset order")
	return cmd
}
