package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score the quality of the published data",
	Long: `Reads the latest published CSV and prints a quality report: record count,
empty cells, duplicate rows, out-of-range temperatures and humidity, and the
derived 0-100 score. A missing latest file prints a structured failure
report and still exits 0.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	report, err := app.validator.Validate(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(report)
}
