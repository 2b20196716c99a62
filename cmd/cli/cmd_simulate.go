package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"clinch-calc/internal/montecarlo"

	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate clinch probabilities with noisy per-contest results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Without a scenario file the flag defaults apply; with one, only
			// flags given explicitly override it.
			flags := cmd.Flags()
			path, _ := flags.GetString("config")
			if flags.Changed("volatility") || path == "" {
				cfg.Simulation.Volatility, _ = flags.GetFloat64("volatility")
			}
			if flags.Changed("trials") || path == "" {
				cfg.Simulation.Trials, _ = flags.GetInt("trials")
			}
			if flags.Changed("workers") {
				cfg.Simulation.Workers, _ = flags.GetInt("workers")
			}
			if flags.Changed("seed") {
				seed, _ := flags.GetUint64("seed")
				cfg.Simulation.Seed = &seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s, err := cfg.Scenario()
			if err != nil {
				return err
			}
			opts := cfg.SimulationOptions()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			cmdLogger(cmd).Debug("simulating", "trials", opts.Trials, "volatility", opts.Volatility, "seed", opts.Seed)
			curve, err := montecarlo.SimulateParallel(ctx, s, opts)
			if err != nil {
				return fmt.Errorf("simulation aborted: %w", err)
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), struct {
					Seed  uint64            `json:"seed"`
					Curve *montecarlo.Curve `json:"curve"`
				}{opts.Seed, curve})
			}
			return renderer(cmd).Curve(cmd.OutOrStdout(), s, curve)
		},
	}

	cmd.Flags().Float64("volatility", 0.5, fmt.Sprintf("Per-contest jitter around each average (0-%g)", montecarlo.MaxVolatility))
	cmd.Flags().Int("trials", montecarlo.DefaultTrials, "Number of simulated seasons")
	cmd.Flags().Int("workers", 0, "Parallel workers (0 = one per CPU)")
	cmd.Flags().Uint64("seed", 0, "Random seed for reproducible runs (default: random)")
	return cmd
}
