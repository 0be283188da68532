package gsheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const testSheetID = "sheet-123"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubClient points the Sheets service at a local test server instead of the
// real API. The credential file just has to exist; it is never parsed.
func stubClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	credentials := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(credentials, []byte("{}"), 0o600))

	return &Client{
		sheetID:     testSheetID,
		readRange:   "Sheet1",
		credentials: credentials,
		timeout:     5 * time.Second,
		opts: []option.ClientOption{
			option.WithoutAuthentication(),
			option.WithEndpoint(baseURL),
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"}),
		logger:  discardLogger(),
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, testSheetID)

		resp := sheets.ValueRange{
			Range:          "Sheet1!A1:C3",
			MajorDimension: "ROWS",
			Values: [][]any{
				{"fecha", "ciudad", "temperatura_celsius"},
				{"2024-01-15 14:30:25", "Bogotá", "18.5"},
				{"2024-01-15 14:30:25", "Cali", 28.5},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := stubClient(t, srv.URL)
	tbl, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"fecha", "ciudad", "temperatura_celsius"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"2024-01-15 14:30:25", "Bogotá", "18.5"}, tbl.Rows[0])
	assert.Equal(t, "28.5", tbl.Rows[1][2], "numeric cells render as plain decimals")
}

func TestClient_Fetch_NotConfigured(t *testing.T) {
	c := NewClient("", "Sheet1", "credentials/google_sheets_credentials.json", time.Second, discardLogger())

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Fetch_MissingCredentials(t *testing.T) {
	c := NewClient(testSheetID, "Sheet1", filepath.Join(t.TempDir(), "absent.json"), time.Second, discardLogger())

	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)
	assert.Contains(t, err.Error(), "absent.json")
}

func TestClient_Fetch_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"permission denied"}}`))
	}))
	defer srv.Close()

	c := stubClient(t, srv.URL)
	_, err := c.Fetch(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
	assert.NotErrorIs(t, err, ErrNoCredentials)
}

func TestClient_Fetch_EmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := sheets.ValueRange{
			Values: [][]any{{"fecha", "ciudad"}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := stubClient(t, srv.URL)
	_, err := c.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestClient_Fetch_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := stubClient(t, srv.URL)
	// Consecutive failures past the breaker's threshold open it.
	for i := 0; i < 6; i++ {
		_, err := c.Fetch(context.Background())
		require.Error(t, err)
	}

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestTableFromValues(t *testing.T) {
	t.Run("pads short rows and drops overflow cells", func(t *testing.T) {
		tbl := tableFromValues([][]any{
			{"a", "b", "c"},
			{"1"},
			{"1", "2", "3", "overflow"},
		})

		assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
		assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
		assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[1])
	})

	t.Run("renders mixed cell types", func(t *testing.T) {
		tbl := tableFromValues([][]any{
			{"col"},
			{18.5},
			{true},
			{nil},
		})

		assert.Equal(t, [][]string{{"18.5"}, {"true"}, {""}}, tbl.Rows)
	})
}
