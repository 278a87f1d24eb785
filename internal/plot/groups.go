package plot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/naming"
	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/table"
)

// SingleGroup names the only group when GroupOptions.Single is set.
const SingleGroup = "all"

// GroupOptions configures comparison plots.
type GroupOptions struct {
	InputDir  string
	OutputDir string

	// Columns keeps the first Columns checkpoints of every file. Files with
	// fewer columns are skipped. Zero keeps all columns.
	Columns int

	// Processed strips the trailing summary block before summarizing.
	Processed bool

	// Single puts every file into one chart instead of grouping by name.
	Single bool

	// Level is the confidence level; zero means stats.DefaultLevel.
	Level float64

	Chart Options

	// Optimum overrides Chart.Optimum per group when it reports ok.
	Optimum func(group string) (float64, bool)

	Recorder batch.Recorder
}

// GroupResult lists the loaded files and the charts written.
type GroupResult struct {
	*batch.Result
	Charts []string
}

// Groups loads every CSV in InputDir, groups the files by naming scheme and
// writes one comparison chart per group to OutputDir as
// group_<sanitized group>.png.
func Groups(ctx context.Context, opts GroupOptions) (*GroupResult, error) {
	level := opts.Level
	if level == 0 {
		level = stats.DefaultLevel
	}

	groups := map[string][]Curve{}
	res, err := batch.Walk(ctx, opts.InputDir, opts.Recorder, func(path string, fr *batch.FileResult) error {
		name, err := naming.Parse(fr.File)
		if err != nil {
			return err
		}

		t, err := loadTrials(path, opts.Processed)
		if err != nil {
			return err
		}
		if opts.Columns > 0 {
			if t.Cols() < opts.Columns {
				return fmt.Errorf("%w: %d columns, need %d", batch.ErrSkip, t.Cols(), opts.Columns)
			}
			t = t.TruncateColumns(opts.Columns)
		}
		fr.Rows, fr.Cols = t.Rows(), t.Cols()

		curve, err := NewCurve(name.Algorithm(), t, level)
		if err != nil {
			return err
		}

		group := name.Group()
		if opts.Single {
			group = SingleGroup
		}
		groups[group] = append(groups[group], curve)
		fr.Output = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &GroupResult{Result: res}
	keys := make([]string, 0, len(groups))
	for g := range groups {
		keys = append(keys, g)
	}
	sort.Strings(keys)

	for _, g := range keys {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		chartOpts := opts.Chart
		if opts.Optimum != nil {
			if v, ok := opts.Optimum(g); ok {
				chartOpts.Optimum = v
			}
		}

		path := filepath.Join(opts.OutputDir, "group_"+naming.Sanitize(g)+".png")
		curves := groups[g]
		err := savePNG(path, func(w io.Writer) error {
			return Comparison(w, "Performance Comparison: "+g, curves, chartOpts)
		})
		if err != nil {
			slog.Error("Chart failed", "group", g, "error", err)
			continue
		}
		slog.Info("Chart saved", "group", g, "curves", len(curves), "path", path)
		out.Charts = append(out.Charts, path)
	}

	return out, nil
}

func loadTrials(path string, processed bool) (*table.Table, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if processed {
		t, err = stats.StripSummary(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	if t.Rows() == 0 {
		return nil, fmt.Errorf("%w: no trial rows", batch.ErrSkip)
	}
	return t, nil
}
