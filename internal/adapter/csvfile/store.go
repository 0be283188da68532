// Package csvfile persists pipeline tables as CSV file artifacts.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chalonov-academic/airflow-etl-data-engineering/internal/domain"
)

// Store reads and writes CSV artifacts. Writes go through a temp file plus
// rename in the destination directory, so a reader sees either the previous
// complete artifact or the new one, never a partial file.
type Store struct {
	logger *slog.Logger
}

// NewStore creates a file-backed artifact store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// EncodeTable renders a table as CSV bytes: header first, then one line per
// row, LF-terminated, quoting only where the CSV grammar requires it.
func EncodeTable(t domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadTable loads a CSV artifact. The first line is the header; every row
// must have the same cell count, which the CSV reader enforces. A missing
// file surfaces as an error satisfying errors.Is(err, fs.ErrNotExist).
func (s *Store) ReadTable(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	if len(all) == 0 {
		return domain.Table{}, fmt.Errorf("artifact %s has no header", path)
	}

	t := domain.Table{Columns: all[0]}
	if len(all) > 1 {
		t.Rows = all[1:]
	}

	s.logger.Debug("artifact read", "path", path, "rows", len(t.Rows))
	return t, nil
}

// WriteTable writes a single CSV artifact, replacing any previous file.
func (s *Store) WriteTable(path string, t domain.Table) error {
	_, err := s.WriteCopies(t, path)
	return err
}

// WriteCopies writes the same table to every path, encoding once so all
// copies are byte-identical. Returns the encoded size in bytes.
func (s *Store) WriteCopies(t domain.Table, paths ...string) (int64, error) {
	data, err := EncodeTable(t)
	if err != nil {
		return 0, err
	}

	for _, path := range paths {
		if err := s.writeFile(path, data); err != nil {
			return 0, err
		}
		s.logger.Debug("artifact written", "path", path, "rows", len(t.Rows), "bytes", len(data))
	}

	return int64(len(data)), nil
}

// writeFile replaces path with data via temp-file-and-rename in the target
// directory, creating the directory if needed.
func (s *Store) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace artifact %s: %w", path, err)
	}

	return nil
}
