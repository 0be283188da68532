package domain

// Table is the in-memory form of a CSV artifact: an ordered header plus rows
// of string cells. Cells stay strings end to end so artifacts round-trip
// exactly; an empty cell is a null. Rows are assumed rectangular, which the
// CSV layer enforces on read.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row for the named column, or "" when
// the column is absent.
func (t Table) Cell(row int, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 {
		return ""
	}
	return t.Rows[row][i]
}

// Column returns the named column's values in row order, or nil when absent.
func (t Table) Column(name string) []string {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// WithColumn returns a copy of the table with the named column set to the
// given values, one per row. An existing column of the same name is
// overwritten in place, keeping its position; a new name is appended after
// the current columns. Overwrite-not-duplicate is what makes reapplying an
// enrichment step a no-op rather than a schema change.
func (t Table) WithColumn(name string, values []string) Table {
	idx := t.ColumnIndex(name)

	columns := make([]string, len(t.Columns), len(t.Columns)+1)
	copy(columns, t.Columns)
	if idx < 0 {
		idx = len(columns)
		columns = append(columns, name)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		cells[idx] = values[r]
		rows[r] = cells
	}

	return Table{Columns: columns, Rows: rows}
}

// Filter returns a copy of the table keeping only rows for which keep returns
// true, plus the number of rows removed. Surviving rows share cell storage
// with the receiver; they are never mutated afterwards by table operations.
func (t Table) Filter(keep func(row []string) bool) (Table, int) {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}

	return Table{Columns: columns, Rows: rows}, len(t.Rows) - len(rows)
}

// DropIncompleteRows returns a copy of the table without any row that has at
// least one empty cell, plus the number of rows dropped.
func (t Table) DropIncompleteRows() (Table, int) {
	return t.Filter(func(row []string) bool {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
		return true
	})
}
