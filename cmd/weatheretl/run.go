package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full pipeline once",
	Long: `Runs extract, transform, load, and validate in order, stopping at the first
stage that fails, and prints the combined run result.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	result, err := app.runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(result)
}
