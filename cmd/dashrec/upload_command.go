package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dashrec/internal/store"
)

var uploadExtensions = map[string]struct{}{
	".webm": {},
	".mp4":  {},
	".mkv":  {},
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var filename string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Register a recording and start processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			ext := strings.ToLower(filepath.Ext(absPath))
			if _, ok := uploadExtensions[ext]; !ok {
				return fmt.Errorf("unsupported file extension %q", ext)
			}

			return ctx.withApp(func(a *app) error {
				view, err := a.service.RegisterUpload(cmd.Context(), absPath, filename)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !jsonOut {
					fmt.Fprintf(out, "Registered recording %s (%s)\n", view.ID, view.Filename)
				}
				a.wait()
				status, err := a.service.Status(cmd.Context(), view.ID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}
				if status != nil {
					colorize := shouldColorize(out)
					fmt.Fprintf(out, "Processing finished: %s (%s)\n",
						colorized(status.Status, statusColor(status.Status), colorize),
						formatProgress(status.Progress))
					if status.Error != nil {
						fmt.Fprintf(out, "Error in %s: %s\n", status.Error.Step, status.Error.Message)
					}
					if status.Status == string(store.StatusError) {
						return fmt.Errorf("processing failed")
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Display filename (defaults to the source basename)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
