package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/store"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var recipient string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sync <id>",
		Short: "Deliver a recording to Solar Core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return ctx.withApp(func(a *app) error {
				outcome, err := a.service.Sync(cmd.Context(), id, recipient)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, outcome)
				}
				out := cmd.OutOrStdout()
				if outcome.Status == string(store.SyncSynced) {
					fmt.Fprintf(out, "%s\n", outcome.Message)
					if outcome.SolarCoreID != "" {
						fmt.Fprintf(out, "Solar Core ID: %s\n", outcome.SolarCoreID)
					}
					return nil
				}
				message := outcome.Error
				if message == "" {
					message = outcome.Message
				}
				return fmt.Errorf("sync failed: %s", message)
			})
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient recorded in the delivery envelope")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
