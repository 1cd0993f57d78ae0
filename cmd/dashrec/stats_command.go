package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recording counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *app) error {
				stats, err := a.service.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, stats)
				}
				out := cmd.OutOrStdout()
				total := 0
				for _, status := range store.AllStatuses() {
					count := stats[status]
					total += count
					fmt.Fprintf(out, "  %-14s %d\n", string(status)+":", count)
				}
				fmt.Fprintf(out, "  %-14s %d\n", "total:", total)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
