package plot

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/table"
)

// DefaultPerPlot is the number of trials drawn per chart.
const DefaultPerPlot = 5

// TrialOptions configures per-trial charts.
type TrialOptions struct {
	InputDir  string
	OutputDir string

	// PerPlot trials go into each chart; zero means DefaultPerPlot.
	PerPlot int

	// Processed strips the trailing summary block first.
	Processed bool

	Chart Options

	Recorder batch.Recorder
}

// TrialLines turns every row of t into a line named "Trial k", k counting
// from one. Non-numeric cells become gaps.
func TrialLines(t *table.Table) []Line {
	lines := make([]Line, t.Rows())
	for r := range lines {
		values := make([]float64, t.Cols())
		for c := range values {
			v, ok := t.Float(r, c)
			if !ok {
				v = math.NaN()
			}
			values[c] = v
		}
		lines[r] = Line{Name: fmt.Sprintf("Trial %d", r+1), Values: values}
	}
	return lines
}

// TrialCharts writes the trials of every CSV in InputDir in chunks of PerPlot,
// one chart per chunk, named <stem>_trials_<a>_to_<b>.png.
func TrialCharts(ctx context.Context, opts TrialOptions) (*batch.Result, error) {
	per := opts.PerPlot
	if per <= 0 {
		per = DefaultPerPlot
	}

	return batch.Walk(ctx, opts.InputDir, opts.Recorder, func(path string, fr *batch.FileResult) error {
		t, err := loadTrials(path, opts.Processed)
		if err != nil {
			return err
		}
		fr.Rows, fr.Cols = t.Rows(), t.Cols()

		clean := naming.Clean(fr.File)
		lines := TrialLines(t)
		for from := 0; from < len(lines); from += per {
			to := min(from+per, len(lines))
			a, b := from+1, to

			out := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_trials_%d_to_%d.png", clean, a, b))
			title := fmt.Sprintf("%s (Trials %d-%d)", clean, a, b)
			chunk := lines[from:to]
			err := savePNG(out, func(w io.Writer) error {
				return Trials(w, title, chunk, opts.Chart)
			})
			if err != nil {
				return fmt.Errorf("trials %d-%d: %w", a, b, err)
			}
			fr.Output = out
		}
		return nil
	})
}
