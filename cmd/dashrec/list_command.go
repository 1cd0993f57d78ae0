package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashrec/internal/api"
	"dashrec/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter store.Status
			if statusFilter != "" {
				parsed, ok := store.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filter = parsed
			}

			return ctx.withApp(func(a *app) error {
				views, err := a.service.List(cmd.Context())
				if err != nil {
					return err
				}
				if filter != "" {
					filtered := views[:0]
					for _, view := range views {
						if view.Status == string(filter) {
							filtered = append(filtered, view)
						}
					}
					views = filtered
				}
				if jsonOut {
					return writeJSON(cmd, views)
				}
				out := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintln(out, "No recordings")
					return nil
				}
				fmt.Fprintln(out, renderListTable(views))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show recordings with this status")
	return cmd
}

func renderListTable(views []api.Recording) string {
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		sync := view.SyncStatus
		if view.Synced {
			sync = "synced"
		}
		rows = append(rows, []string{
			view.ID,
			view.Filename,
			view.Status,
			formatProgress(view.Progress),
			view.Language,
			formatDuration(view.DurationSeconds),
			formatBytes(view.FileSizeBytes),
			sync,
		})
	}
	return renderTable(
		[]string{"ID", "Filename", "Status", "Progress", "Lang", "Duration", "Size", "Sync"},
		rows,
		5, 6,
	)
}
