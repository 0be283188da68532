package csvfile

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTable() domain.Table {
	return domain.Table{
		Columns: []string{domain.ColCity, domain.ColTemperatureC},
		Rows: [][]string{
			{"Bogotá", "18.5"},
			{"Cali", "28.0"},
		},
	}
}

func TestEncodeTable(t *testing.T) {
	t.Run("header plus rows, LF terminated", func(t *testing.T) {
		data, err := EncodeTable(testTable())

		require.NoError(t, err)
		assert.Equal(t, "ciudad,temperatura_celsius\nBogotá,18.5\nCali,28.0\n", string(data))
	})

	t.Run("header only when table has no rows", func(t *testing.T) {
		data, err := EncodeTable(domain.Table{Columns: []string{"a", "b"}})

		require.NoError(t, err)
		assert.Equal(t, "a,b\n", string(data))
	})
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(discardLogger())
	path := filepath.Join(t.TempDir(), "raw_weather_data.csv")

	require.NoError(t, store.WriteTable(path, testTable()))

	got, err := store.ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, testTable(), got)
}

func TestStoreQuotedCells(t *testing.T) {
	store := NewStore(discardLogger())
	path := filepath.Join(t.TempDir(), "artifact.csv")

	tbl := domain.Table{
		Columns: []string{"ciudad", "nota"},
		Rows:    [][]string{{"Bogotá", `cold, windy and "wet"`}},
	}

	require.NoError(t, store.WriteTable(path, tbl))

	got, err := store.ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestStoreWriteTableOverwrites(t *testing.T) {
	store := NewStore(discardLogger())
	path := filepath.Join(t.TempDir(), "artifact.csv")

	require.NoError(t, store.WriteTable(path, testTable()))

	replacement := domain.Table{Columns: []string{"ciudad"}, Rows: [][]string{{"Medellín"}}}
	require.NoError(t, store.WriteTable(path, replacement))

	got, err := store.ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestStoreWriteCopies(t *testing.T) {
	store := NewStore(discardLogger())
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "weather_data_20240115_143025.csv")
	latest := filepath.Join(dir, "weather_data_latest.csv")

	size, err := store.WriteCopies(testTable(), snapshot, latest)
	require.NoError(t, err)

	first, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	second, err := os.ReadFile(latest)
	require.NoError(t, err)

	assert.Equal(t, first, second, "copies must be byte-identical")
	assert.Equal(t, int64(len(first)), size)
}

func TestStoreCreatesMissingDirectories(t *testing.T) {
	store := NewStore(discardLogger())
	path := filepath.Join(t.TempDir(), "data", "processed", "weather_data_latest.csv")

	require.NoError(t, store.WriteTable(path, testTable()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStoreReadTableErrors(t *testing.T) {
	store := NewStore(discardLogger())
	dir := t.TempDir()

	t.Run("missing file is fs.ErrNotExist", func(t *testing.T) {
		_, err := store.ReadTable(filepath.Join(dir, "absent.csv"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("ragged rows rejected", func(t *testing.T) {
		path := filepath.Join(dir, "ragged.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3\n"), 0o644))

		_, err := store.ReadTable(path)
		require.Error(t, err)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := store.ReadTable(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header")
	})

	t.Run("header-only artifact reads as empty table", func(t *testing.T) {
		path := filepath.Join(dir, "header_only.csv")
		require.NoError(t, os.WriteFile(path, []byte("ciudad,temperatura_celsius\n"), 0o644))

		got, err := store.ReadTable(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"ciudad", "temperatura_celsius"}, got.Columns)
		assert.Empty(t, got.Rows)
	})
}
