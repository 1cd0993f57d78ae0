package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/store"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process <id>",
		Short: "Run the processing pipeline for an uploaded recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return ctx.withApp(func(a *app) error {
				if !a.runner.Trigger(id) {
					return fmt.Errorf("recording %s is already being processed", id)
				}
				a.wait()

				status, err := a.service.Status(cmd.Context(), id)
				if err != nil {
					return err
				}
				if status == nil {
					return fmt.Errorf("recording %s not found", id)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "%s: %s (%s)\n", id,
					colorized(status.Status, statusColor(status.Status), colorize),
					formatProgress(status.Progress))
				if status.Error != nil {
					fmt.Fprintf(out, "Error in %s: %s\n", status.Error.Step, status.Error.Message)
				}
				if status.Status == string(store.StatusError) {
					return fmt.Errorf("processing failed")
				}
				return nil
			})
		},
	}
}
