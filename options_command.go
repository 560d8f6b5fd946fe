package main

import (
	"fmt"

	"github.com/nijaru/yt-blog/models"
	"github.com/spf13/cobra"
)

func newOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the accepted audience, tone and format values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := models.DefaultFormOptions()

			var rows [][]string
			rows = appendChoices(rows, "audience", models.Audiences, string(defaults.Audience))
			rows = appendChoices(rows, "tone", models.Tones, string(defaults.Tone))
			rows = appendChoices(rows, "format", models.OutputFormats, string(defaults.OutputFormat))

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Option", "Value", "Label", "Default"}, rows))
			return nil
		},
	}
}

func appendChoices(rows [][]string, field string, choices []models.Choice, def string) [][]string {
	for _, c := range choices {
		mark := ""
		if c.Value == def {
			mark = "*"
		}
		rows = append(rows, []string{field, c.Value, c.Label, mark})
	}
	return rows
}
