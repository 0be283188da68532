package main

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch raw observations into the work directory",
	Long: `Fetches observations from the configured Google Sheet and writes the raw CSV
artifact. When the sheet is not configured or cannot be reached, synthetic
observations are generated instead; the printed result names the fallback
reason.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	res, err := app.extractor.Extract(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(res)
}
