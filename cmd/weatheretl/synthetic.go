package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/adapter/csvfile"
	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
)

var (
	syntheticOut  string
	syntheticSeed int64
	syntheticAt   string
)

var syntheticCmd = &cobra.Command{
	Use:   "synthetic",
	Short: "Write a synthetic observation CSV fixture",
	Long: `Generates the same synthetic observation batch the extractor falls back to
and writes it to a CSV file. It goes through the real generator, so fixtures
always match pipeline behavior; a fixed seed and base time make the output
reproducible.`,
	RunE: runSynthetic,
}

func init() {
	syntheticCmd.Flags().StringVar(&syntheticOut, "out", "synthetic_weather_data.csv", "output CSV path")
	syntheticCmd.Flags().Int64Var(&syntheticSeed, "seed", 0, "random seed, 0 seeds from the current time")
	syntheticCmd.Flags().StringVar(&syntheticAt, "at", "", "RFC3339 base time for observation timestamps, empty uses now")
	rootCmd.AddCommand(syntheticCmd)
}

func runSynthetic(_ *cobra.Command, _ []string) error {
	if syntheticAt != "" {
		at, err := time.Parse(time.RFC3339, syntheticAt)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", syntheticAt, err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	seed := syntheticSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table := domain.GenerateSynthetic(rand.New(rand.NewSource(seed)))

	store := csvfile.NewStore(slog.Default())
	if err := store.WriteTable(syntheticOut, table); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	return printJSON(map[string]any{
		"path":    syntheticOut,
		"records": len(table.Rows),
	})
}
