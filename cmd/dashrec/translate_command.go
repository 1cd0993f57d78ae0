package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "translate <id> <language>",
		Short: "Translate a recording's transcript into another language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, target := args[0], args[1]
			return ctx.withApp(func(a *app) error {
				outcome, err := a.service.Translate(cmd.Context(), id, target)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, outcome)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Translated %s -> %s\n", outcome.SourceLanguage, outcome.TargetLanguage)
				fmt.Fprintf(out, "Wrote %s\n", outcome.TranslationPath)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
