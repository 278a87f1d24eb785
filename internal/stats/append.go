package stats

import (
	"errors"

	"github.com/cwbudde/trialstat/internal/table"
)

// ErrEmptyTable is returned when there is nothing to summarize.
var ErrEmptyTable = errors.New("stats: empty table")

// ErrShortTable is returned when a processed table has fewer rows than the
// summary block.
var ErrShortTable = errors.New("stats: table shorter than summary block")

// SummarizeColumns returns one Summary per column. Text columns yield a
// zero Summary with Numeric == false.
func SummarizeColumns(t *table.Table, level float64) ([]Summary, error) {
	if t == nil || t.Rows() == 0 || t.Cols() == 0 {
		return nil, ErrEmptyTable
	}

	out := make([]Summary, t.Cols())
	for col := range out {
		if !t.IsNumeric(col) {
			continue
		}
		values, _ := t.Column(col)
		out[col] = Summarize(values, level)
	}
	return out, nil
}

// AppendSummary returns a copy of t with SummaryRows rows appended.
//
// Numeric columns receive mean, standard deviation, CI lower and CI upper
// bound in that order. Text columns are passed through; their cells in the
// appended rows are left empty so the result stays rectangular.
func AppendSummary(t *table.Table, level float64) (*table.Table, error) {
	summaries, err := SummarizeColumns(t, level)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, SummaryRows)
	for i := range rows {
		rows[i] = make([]string, t.Cols())
	}

	for col, s := range summaries {
		if !s.Numeric {
			continue
		}
		for i, v := range s.Values() {
			rows[i][col] = table.FormatFloat(v)
		}
	}

	return t.AppendRows(rows...), nil
}

// TailSummary returns the trailing summary block of a processed table.
func TailSummary(t *table.Table) (*table.Table, error) {
	if t == nil || t.Rows() < SummaryRows {
		return nil, ErrShortTable
	}
	return t.Slice(t.Rows()-SummaryRows, t.Rows()), nil
}

// StripSummary drops the trailing summary block, returning the trial rows.
func StripSummary(t *table.Table) (*table.Table, error) {
	if t == nil || t.Rows() < SummaryRows {
		return nil, ErrShortTable
	}
	return t.Slice(0, t.Rows()-SummaryRows), nil
}
