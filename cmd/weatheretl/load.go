package main

import (
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Publish the transformed artifact",
	Long: `Reads the transformed CSV artifact and publishes it to the processed
directory as a timestamped snapshot plus the stable latest pointer, then
prints load metrics.`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	res, err := app.loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(res)
}
