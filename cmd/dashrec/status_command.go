package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status <id>",
		Short: "Show the processing state of a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return ctx.withApp(func(a *app) error {
				status, err := a.service.Status(cmd.Context(), id)
				if err != nil {
					return err
				}
				if status == nil {
					return fmt.Errorf("recording %s not found", id)
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "%s: %s (%s)\n", id,
					colorized(status.Status, statusColor(status.Status), colorize),
					formatProgress(status.Progress))
				if status.Error != nil {
					fmt.Fprintf(out, "Error in %s: %s\n", status.Error.Step, status.Error.Message)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
