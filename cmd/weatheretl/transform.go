package main

import (
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean and enrich the raw artifact",
	Long: `Reads the raw CSV artifact, drops incomplete rows, derives Fahrenheit, heat
index and temperature category columns, stamps the batch timestamp, filters
implausible temperatures, and writes the transformed CSV artifact.`,
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	res, err := app.transformer.Transform(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(res)
}
