package main

import (
	"fmt"

	"clinch-calc/internal/share"

	"github.com/spf13/cobra"
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that reopens this scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(cmd)
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			link := "?" + share.EncodeQuery(s)
			if base != "" {
				if link, err = share.Link(base, s); err != nil {
					return fmt.Errorf("invalid base URL: %w", err)
				}
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"link": link})
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base URL of the web app")
	return cmd
}
