package domain

import "strings"

// Credibility bounds for the validator's range checks. Wider than the
// transformer's plausibility band: the validator audits what was persisted,
// it does not re-filter.
const (
	minCredibleCelsius = -50.0
	maxCredibleCelsius = 60.0
	minHumidityPct     = 0.0
	maxHumidityPct     = 100.0
)

// QualityChecks holds the raw violation counts computed over a persisted
// snapshot.
type QualityChecks struct {
	TotalRecords          int
	NullValues            int
	DuplicateRows         int
	TemperatureOutOfRange int
	HumidityOutOfRange    int
}

// AssessTable counts quality violations in a snapshot: empty cells, exact
// duplicate rows (every occurrence after the first), temperatures outside
// [-50, 60] °C and humidity outside [0, 100] %. Range checks skip cells that
// do not parse as numbers and count nothing when the column is absent.
func AssessTable(t Table) QualityChecks {
	checks := QualityChecks{TotalRecords: len(t.Rows)}

	for _, row := range t.Rows {
		for _, cell := range row {
			if cell == "" {
				checks.NullValues++
			}
		}
	}

	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			checks.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}

	for _, cell := range t.Column(ColTemperatureC) {
		if v, ok := parseFloat(cell); ok && (v < minCredibleCelsius || v > maxCredibleCelsius) {
			checks.TemperatureOutOfRange++
		}
	}
	for _, cell := range t.Column(ColHumidity) {
		if v, ok := parseFloat(cell); ok && (v < minHumidityPct || v > maxHumidityPct) {
			checks.HumidityOutOfRange++
		}
	}

	return checks
}

// Score computes the 0-100 quality score from flat per-category deductions:
// 20 for any nulls, 15 for any duplicates, 25 for any out-of-range
// temperature, 20 for any out-of-range humidity, clamped at 0. Deductions
// are per category, not per violation.
func (c QualityChecks) Score() int {
	score := 100
	if c.NullValues > 0 {
		score -= 20
	}
	if c.DuplicateRows > 0 {
		score -= 15
	}
	if c.TemperatureOutOfRange > 0 {
		score -= 25
	}
	if c.HumidityOutOfRange > 0 {
		score -= 20
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ClassifyScore maps a quality score to its operational label: 80 and above
// "excellent", 60 and above "good", anything lower "needs attention". The
// label is for logs and dashboards only and is never persisted.
func ClassifyScore(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	default:
		return "needs attention"
	}
}
