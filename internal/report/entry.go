// Package report turns processed trial tables into publication tables:
// LaTeX table* environments and xlsx workbooks.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/table"
)

// Percentiles labels the sampled checkpoint columns.
var Percentiles = [4]string{"25%", "50%", "75%", "100%"}

// Row is one metric row of a report table.
type Row struct {
	Label string
	Cells [4]string
}

// Entry is one report table, built from one processed file.
type Entry struct {
	File    string
	Caption string
	Rows    [stats.SummaryRows]Row
}

// Label is the LaTeX label key of the entry.
func (e Entry) Label() string {
	return strings.ToLower(e.Caption)
}

// SampleIndices returns the column positions sampled from a row of length n:
// the 25%, 50%, 75% and 100% points of the checkpoint axis. The first
// checkpoint (0%) is never sampled.
func SampleIndices(n int) [4]int {
	last := n - 1
	return [4]int{
		max(0, last/4),
		max(0, last/2),
		max(0, 3*last/4),
		last,
	}
}

// SampleRow picks the sampled cells of a row. Out-of-range positions yield
// empty cells.
func SampleRow(row []string) [4]string {
	var out [4]string
	for i, idx := range SampleIndices(len(row)) {
		if idx >= 0 && idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// NewEntry builds an entry from a processed table, reading its trailing
// summary block.
func NewEntry(file string, t *table.Table) (Entry, error) {
	tail, err := stats.TailSummary(t)
	if err != nil {
		return Entry{}, err
	}

	caption := strings.TrimSuffix(file, ".csv")
	if n, err := naming.Parse(file); err == nil {
		caption = n.Caption()
	}

	e := Entry{File: file, Caption: strings.TrimSpace(caption)}
	for i := range e.Rows {
		e.Rows[i] = Row{
			Label: stats.RowLabels[i],
			Cells: SampleRow(tail.Row(i)),
		}
	}
	return e, nil
}

// EntryFromFile reads a processed CSV and builds its entry.
func EntryFromFile(path string, file string) (Entry, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	e, err := NewEntry(file, t)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", file, err)
	}
	return e, nil
}

// Collect builds an entry for every processed CSV in dir, in name order.
// Files that cannot be read are recorded and skipped.
func Collect(ctx context.Context, dir string, rec batch.Recorder) ([]Entry, *batch.Result, error) {
	var entries []Entry
	res, err := batch.Walk(ctx, dir, rec, func(path string, fr *batch.FileResult) error {
		e, err := EntryFromFile(path, fr.File)
		if err != nil {
			return err
		}
		fr.Output = e.Caption
		entries = append(entries, e)
		return nil
	})
	return entries, res, err
}
