// Package gsheets fetches weather observations from the Google Sheets API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
)

// Local misconfiguration errors. The extractor matches on these to report
// why it fell back to synthetic data.
var (
	// ErrNotConfigured means no spreadsheet ID was configured.
	ErrNotConfigured = errors.New("sheet id not configured")
	// ErrNoCredentials means the service-account credential file is absent.
	ErrNoCredentials = errors.New("credentials file not found")
)

// Client reads the observation spreadsheet through the Sheets API, guarded
// by a circuit breaker so a flapping remote does not get hammered by every
// scheduled run.
type Client struct {
	sheetID     string
	readRange   string
	credentials string
	timeout     time.Duration
	opts        []option.ClientOption
	circuit     *gobreaker.CircuitBreaker
	logger      *slog.Logger
}

// NewClient creates a Sheets client authenticated by a service-account
// credential file. The file is only checked at fetch time, so credentials
// can appear between runs without a restart.
func NewClient(sheetID, readRange, credentialsFile string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		sheetID:     sheetID,
		readRange:   readRange,
		credentials: credentialsFile,
		timeout:     timeout,
		opts: []option.ClientOption{
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "google-sheets",
			MaxRequests: 3,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger,
	}
}

// Fetch reads the configured range and returns it as a table with the first
// sheet row as header. All failures are fallback-eligible; ErrNotConfigured
// and ErrNoCredentials mark the locally detectable ones.
func (c *Client) Fetch(ctx context.Context) (domain.Table, error) {
	if c.sheetID == "" {
		return domain.Table{}, ErrNotConfigured
	}
	if _, err := os.Stat(c.credentials); err != nil {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrNoCredentials, c.credentials)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.circuit.Execute(func() (any, error) {
		return c.read(ctx)
	})
	if err != nil {
		return domain.Table{}, err
	}

	tbl := result.(domain.Table)
	c.logger.Debug("sheet fetched", "sheet_id", c.sheetID, "range", c.readRange, "rows", len(tbl.Rows))
	return tbl, nil
}

func (c *Client) read(ctx context.Context) (domain.Table, error) {
	svc, err := sheets.NewService(ctx, c.opts...)
	if err != nil {
		return domain.Table{}, fmt.Errorf("create sheets service: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(c.sheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %s range %s: %w", c.sheetID, c.readRange, err)
	}
	if len(resp.Values) < 2 {
		return domain.Table{}, fmt.Errorf("sheet %s returned no data rows", c.sheetID)
	}

	return tableFromValues(resp.Values), nil
}

// tableFromValues converts the API's row-major cells into a table. The API
// omits trailing empty cells, so short rows are padded with nulls; cells
// beyond the header width are dropped.
func tableFromValues(values [][]any) domain.Table {
	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = formatCell(cell)
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(header))
		for i := range header {
			if i < len(raw) {
				row[i] = formatCell(raw[i])
			}
		}
		rows = append(rows, row)
	}

	return domain.Table{Columns: header, Rows: rows}
}

// formatCell renders one API cell. Formatted responses carry strings, but
// unformatted numeric cells arrive as float64.
func formatCell(v any) string {
	switch cell := v.(type) {
	case string:
		return cell
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(cell)
	case nil:
		return ""
	default:
		return fmt.Sprint(cell)
	}
}
