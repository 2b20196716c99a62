package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"clinch-calc/internal/config"
	"clinch-calc/internal/logging"
	"clinch-calc/internal/model"
	"clinch-calc/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clinch",
		Short: "Find when a two-way standings race is mathematically decided",
		Long: `clinch projects a two-sided points race forward at each side's average
rate and reports the first contest after which one side can no longer be
caught, plus sensitivity grids, what-if presets and Monte Carlo curves.

The scenario comes from --config (YAML) and/or the scenario flags; flags
win over file values. Decimals may use a comma ("1,85").`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML scenario file")
	pf.String("leader", "", "Leader display name")
	pf.String("chaser", "", "Chaser display name")
	pf.String("leader-points", "", "Leader's current points")
	pf.String("chaser-points", "", "Chaser's current points")
	pf.String("remaining", "", "Contests left for both sides")
	pf.String("leader-ppg", "", "Leader's average points per contest (0-3)")
	pf.String("chaser-ppg", "", "Chaser's average points per contest (0-3)")
	pf.String("lang", "en", "Report language (en, it)")
	pf.Bool("json", false, "Output as JSON")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newEvaluateCmd(),
		newSweepCmd(),
		newPresetsCmd(),
		newSimulateCmd(),
		newShareCmd(),
	)
	return rootCmd
}

// loadConfig reads --config, if any, and overlays the scenario flags on it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	logger := cmdLogger(cmd)
	flags := cmd.Flags()

	cfg := &config.Config{}
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadUnchecked(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("loaded scenario file", "path", path)
		cfg = loaded
	}

	get := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	merged := config.Merge(*cfg, config.Config{
		Leader:    config.SideConfig{Name: get("leader"), Points: get("leader-points"), Ppg: get("leader-ppg")},
		Chaser:    config.SideConfig{Name: get("chaser"), Points: get("chaser-points"), Ppg: get("chaser-ppg")},
		Remaining: get("remaining"),
	})
	return &merged, nil
}

func loadScenario(cmd *cobra.Command) (model.Scenario, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return model.Scenario{}, err
	}
	s, err := cfg.Scenario()
	if err != nil {
		return model.Scenario{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

func cmdLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, cmd.ErrOrStderr())
}

func renderer(cmd *cobra.Command) *report.Renderer {
	lang, _ := cmd.Flags().GetString("lang")
	return report.New(lang)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
