package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check that external tools and services are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			if jsonOut {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, result := range results {
					label, color := "OK", ansiGreen
					if !result.Passed {
						label, color = "FAIL", ansiRed
					}
					fmt.Fprintf(out, "  %-24s %s", result.Name+":", colorized("["+label+"]", color, colorize))
					if result.Detail != "" {
						fmt.Fprintf(out, " %s", result.Detail)
					}
					fmt.Fprintln(out)
				}
			}
			if !preflight.AllPassed(results) {
				return fmt.Errorf("preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
