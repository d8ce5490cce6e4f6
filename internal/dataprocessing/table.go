package dataprocessing

import "strings"

// Table is a rectangular view of a sheet or delimited file. The first source
// row becomes Headers; every following row is kept as-is. Short rows are
// tolerated and read as empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of the first header equal to name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// FindColumn returns the first header, in native order, accepted by match.
func (t *Table) FindColumn(match func(header string) bool) (int, bool) {
	for i, h := range t.Headers {
		if match(h) {
			return i, true
		}
	}
	return -1, false
}

// MissingColumns returns the subset of names not present in Headers.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the value at row, col or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// TrimHeaders strips surrounding whitespace from every header.
func (t *Table) TrimHeaders() {
	for i, h := range t.Headers {
		t.Headers[i] = strings.TrimSpace(h)
	}
}

// RenameColumns applies renames to headers that are present and returns the
// number of headers changed. Absent source columns are ignored.
func (t *Table) RenameColumns(renames map[string]string) int {
	n := 0
	for i, h := range t.Headers {
		if to, ok := renames[h]; ok && to != h {
			t.Headers[i] = to
			n++
		}
	}
	return n
}

// MapCells replaces every header and cell with fn(value).
func (t *Table) MapCells(fn func(string) string) {
	for i, h := range t.Headers {
		t.Headers[i] = fn(h)
	}
	for _, row := range t.Rows {
		for j, v := range row {
			row[j] = fn(v)
		}
	}
}

func newTable(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}
	t := &Table{Headers: records[0]}
	for _, rec := range records[1:] {
		if blankRow(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
