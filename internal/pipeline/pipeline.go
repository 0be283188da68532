// Package pipeline implements the four-stage weather ETL: extract,
// transform, load, validate. Stages hand data to each other only through
// CSV artifacts on disk, so each one can also be run on its own.
package pipeline

import (
	"context"
	"encoding/json"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
)

// ArtifactStore reads and writes the CSV artifacts stages exchange.
type ArtifactStore interface {
	ReadTable(path string) (domain.Table, error)
	WriteTable(path string, t domain.Table) error
	WriteCopies(t domain.Table, paths ...string) (int64, error)
}

// SheetSource fetches the remote observation spreadsheet.
type SheetSource interface {
	Fetch(ctx context.Context) (domain.Table, error)
}

// Stage names as they appear in logs, metrics and failure results.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
	StageValidate  = "validate"
)

// Raw-data origins reported by the extractor.
const (
	SourceSheets    = "sheets"
	SourceSynthetic = "synthetic"
)

// Validator structured-failure values.
const (
	StatusFailed       = "failed"
	ReasonFileNotFound = "file_not_found"
)

// ExtractResult reports where the raw artifact came from. FallbackReason is
// set only when synthetic data was substituted.
type ExtractResult struct {
	ArtifactPath   string `json:"artifact_path"`
	Source         string `json:"source"`
	Records        int    `json:"records"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// TransformResult reports the cleaning outcome of one transformation.
type TransformResult struct {
	ArtifactPath      string             `json:"artifact_path"`
	RecordsIn         int                `json:"records_in"`
	RecordsOut        int                `json:"records_out"`
	DroppedIncomplete int                `json:"dropped_incomplete"`
	DroppedOutOfRange int                `json:"dropped_out_of_range"`
	CityStats         []domain.CityStats `json:"city_stats,omitempty"`
}

// RunMetrics is the loader's result. Its five JSON keys are a reporting
// contract shared with downstream tooling and must not change.
type RunMetrics struct {
	RecordsProcessed int     `json:"records_processed"`
	CitiesCount      int     `json:"cities_count"`
	AvgTemperature   float64 `json:"avg_temperature"`
	ProcessingTime   string  `json:"processing_time"`
	FileSizeKB       float64 `json:"file_size_kb"`
}

// QualityReport is the validator's result. A missing snapshot produces the
// structured failure form (Status "failed" plus a Reason) instead of an
// error; successful validations carry the counts and score alone.
type QualityReport struct {
	Status                string
	Reason                string
	TotalRecords          int
	NullValues            int
	DuplicateRows         int
	TemperatureOutOfRange int
	HumidityOutOfRange    int
	QualityScore          int
}

// MarshalJSON keeps the two report shapes of the contract distinct: failures
// serialize as status and reason only, successes as the six check keys.
func (q QualityReport) MarshalJSON() ([]byte, error) {
	if q.Status != "" {
		return json.Marshal(struct {
			Status string `json:"status"`
			Reason string `json:"reason"`
		}{q.Status, q.Reason})
	}

	return json.Marshal(struct {
		TotalRecords          int `json:"total_records"`
		NullValues            int `json:"null_values"`
		DuplicateRows         int `json:"duplicate_rows"`
		TemperatureOutOfRange int `json:"temperature_out_of_range"`
		HumidityOutOfRange    int `json:"humidity_out_of_range"`
		QualityScore          int `json:"quality_score"`
	}{q.TotalRecords, q.NullValues, q.DuplicateRows, q.TemperatureOutOfRange, q.HumidityOutOfRange, q.QualityScore})
}
