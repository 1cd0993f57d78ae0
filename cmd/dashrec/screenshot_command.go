package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newScreenshotCommand(ctx *commandContext) *cobra.Command {
	var tsOffset float64
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "screenshot <id> <image-path>",
		Short: "Attach a captured frame to a recording",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, imagePath := args[0], args[1]
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read screenshot: %w", err)
			}

			return ctx.withApp(func(a *app) error {
				shot, err := a.service.AddScreenshot(cmd.Context(), id, filepath.Base(imagePath), tsOffset, data)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, shot)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s at %.1fs (%s)\n", shot.Filename, shot.Timestamp, shot.Path)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&tsOffset, "at", 0, "Offset in seconds from the start of the recording")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
