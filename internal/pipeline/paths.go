package pipeline

import (
	"path/filepath"
	"time"
)

// Artifact file names. Raw and transformed are scratch files in the work
// directory; the loader publishes snapshots and the latest pointer under the
// processed directory.
const (
	RawFileName         = "raw_weather_data.csv"
	TransformedFileName = "transformed_weather_data.csv"
	LatestFileName      = "weather_data_latest.csv"

	snapshotPrefix     = "weather_data_"
	snapshotTimeLayout = "20060102_150405"
)

// Paths resolves where each stage reads and writes its artifacts.
type Paths struct {
	WorkDir      string
	ProcessedDir string
}

// Raw is the extractor's output and the transformer's input.
func (p Paths) Raw() string {
	return filepath.Join(p.WorkDir, RawFileName)
}

// Transformed is the transformer's output and the loader's input.
func (p Paths) Transformed() string {
	return filepath.Join(p.WorkDir, TransformedFileName)
}

// Latest is the stable pointer to the most recent snapshot's content.
func (p Paths) Latest() string {
	return filepath.Join(p.ProcessedDir, LatestFileName)
}

// Snapshot is the timestamped, never-overwritten copy for a load at t.
func (p Paths) Snapshot(t time.Time) string {
	return filepath.Join(p.ProcessedDir, snapshotPrefix+t.Format(snapshotTimeLayout)+".csv")
}
