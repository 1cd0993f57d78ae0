package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/store"
)

func newRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Reset an errored recording and process it again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return ctx.withApp(func(a *app) error {
				ok, err := a.service.Retry(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("recording %s not found", id)
				}
				a.wait()

				status, err := a.service.Status(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				if status != nil {
					fmt.Fprintf(out, "%s: %s (%s)\n", id,
						colorized(status.Status, statusColor(status.Status), colorize),
						formatProgress(status.Progress))
					if status.Status == string(store.StatusError) {
						return fmt.Errorf("processing failed")
					}
				}
				return nil
			})
		},
	}
}
