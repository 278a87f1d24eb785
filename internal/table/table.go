package table

import (
	"math"
	"strconv"
	"strings"
)

// Table is a header-less trial table: one row per trial, one column per
// evaluation checkpoint. Cells keep their original text so that pass-through
// columns are written back byte-for-byte.
//
// A Table is rectangular: rows shorter than the widest row are padded with
// empty (missing) cells when the table is built.
type Table struct {
	cells [][]string
	cols  int
}

// New builds a table from raw records, padding short rows.
// The records are copied; later changes to them do not affect the table.
func New(records [][]string) *Table {
	cols := 0
	for _, rec := range records {
		if len(rec) > cols {
			cols = len(rec)
		}
	}

	cells := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, cols)
		copy(row, rec)
		cells[i] = row
	}

	return &Table{cells: cells, cols: cols}
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.cells)
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.cols
}

// Cell returns the raw text at (row, col).
func (t *Table) Cell(row, col int) string {
	return t.cells[row][col]
}

// Row returns a copy of a row.
func (t *Table) Row(row int) []string {
	return append([]string(nil), t.cells[row]...)
}

// Records returns a deep copy of all rows.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.cells))
	for i := range t.cells {
		out[i] = t.Row(i)
	}
	return out
}

// Float parses the cell at (row, col). Missing cells yield NaN with ok=true;
// ok is false only for text that is not a number.
func (t *Table) Float(row, col int) (float64, bool) {
	return ParseCell(t.Cell(row, col))
}

// IsNumeric reports whether every cell in the column is a number or missing.
func (t *Table) IsNumeric(col int) bool {
	for row := range t.cells {
		if _, ok := t.Float(row, col); !ok {
			return false
		}
	}
	return true
}

// Column returns the column as floats. ok is false if the column holds text.
// Missing cells are returned as NaN.
func (t *Table) Column(col int) ([]float64, bool) {
	values := make([]float64, len(t.cells))
	for row := range t.cells {
		v, ok := t.Float(row, col)
		if !ok {
			return nil, false
		}
		values[row] = v
	}
	return values, true
}

// Slice returns rows [from, to) as a new table. Bounds are clamped.
func (t *Table) Slice(from, to int) *Table {
	from = clamp(from, 0, len(t.cells))
	to = clamp(to, from, len(t.cells))
	return New(t.cells[from:to])
}

// TruncateColumns keeps the first n columns. If the table is narrower it is
// returned as a copy unchanged.
func (t *Table) TruncateColumns(n int) *Table {
	if n >= t.cols {
		return New(t.cells)
	}
	n = clamp(n, 0, t.cols)
	records := make([][]string, len(t.cells))
	for i, row := range t.cells {
		records[i] = row[:n]
	}
	return New(records)
}

// AppendRows returns a new table with rows added at the bottom.
// Rows wider than the table widen it; narrower rows are padded.
func (t *Table) AppendRows(rows ...[]string) *Table {
	records := make([][]string, 0, len(t.cells)+len(rows))
	records = append(records, t.cells...)
	records = append(records, rows...)
	return New(records)
}

// ParseCell interprets one cell. Empty cells and the usual NA spellings are
// missing values (NaN, ok). Anything strconv.ParseFloat rejects is text.
func ParseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatFloat renders a value the way summary cells are written: shortest
// round-trip representation, NaN as an empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "n/a", "null", "none":
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
