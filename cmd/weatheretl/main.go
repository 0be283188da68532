// Package main provides the weatheretl command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	workDir      string
	processedDir string
)

var rootCmd = &cobra.Command{
	Use:   "weatheretl",
	Short: "Scheduled weather observation ETL pipeline",
	Long: `weatheretl extracts weather observations from a Google Sheet (substituting
synthetic data when the sheet is unavailable), cleans and enriches them,
publishes timestamped CSV snapshots, and scores the published data's quality.

The four stages exchange data only through CSV files, so each subcommand can
also be run on its own by an external scheduler.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "override WORK_DIR for scratch artifacts")
	rootCmd.PersistentFlags().StringVar(&processedDir, "processed-dir", "", "override PROCESSED_DIR for published data")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
