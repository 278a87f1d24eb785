package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/table"
)

// ErrNoData is returned when a chart would contain no plottable point.
var ErrNoData = errors.New("plot: no finite data points")

// Curve is the per-checkpoint summary of one result file: the mean best value
// and its confidence band.
type Curve struct {
	Name  string
	Mean  []float64
	Lower []float64
	Upper []float64
}

// NewCurve summarizes every column of t. Text columns and columns with fewer
// than two values leave NaN gaps which are not drawn.
func NewCurve(name string, t *table.Table, level float64) (Curve, error) {
	summaries, err := stats.SummarizeColumns(t, level)
	if err != nil {
		return Curve{}, err
	}

	c := Curve{
		Name:  name,
		Mean:  make([]float64, len(summaries)),
		Lower: make([]float64, len(summaries)),
		Upper: make([]float64, len(summaries)),
	}
	for i, s := range summaries {
		if !s.Numeric {
			c.Mean[i], c.Lower[i], c.Upper[i] = math.NaN(), math.NaN(), math.NaN()
			continue
		}
		c.Mean[i], c.Lower[i], c.Upper[i] = s.Mean, s.Lower, s.Upper
	}
	return c, nil
}

// Len is the number of checkpoints.
func (c Curve) Len() int {
	return len(c.Mean)
}

// Line is a single named trajectory, one value per checkpoint.
type Line struct {
	Name   string
	Values []float64
}

// Comparison draws one mean line per curve with vertical CI bars at evenly
// spaced checkpoints.
func Comparison(w io.Writer, title string, curves []Curve, opts Options) error {
	var (
		series []chart.Series
		legend []chart.Series
		ext    = newExtent()
		width  int
	)

	for i, c := range curves {
		xs, ys := points(c.Mean)
		if len(xs) == 0 {
			continue
		}
		width = max(width, c.Len())
		ext.add(ys...)

		mean := chart.ContinuousSeries{
			Name:    c.Name,
			Style:   lineStyle(i, 2),
			XValues: xs,
			YValues: ys,
		}
		series = append(series, mean)
		legend = append(legend, mean)

		barStyle := lineStyle(i, 1)
		barStyle.StrokeDashArray = nil
		for _, x := range barPositions(c.Len(), opts.ErrorBars) {
			lo, hi := c.Lower[x], c.Upper[x]
			if !finite(lo) || !finite(hi) {
				continue
			}
			ext.add(lo, hi)
			series = append(series, chart.ContinuousSeries{
				Style:   barStyle,
				XValues: []float64{float64(x), float64(x)},
				YValues: []float64{lo, hi},
			})
		}
	}

	return render(w, title, "Number of Evaluations", "Best Value Found", width, series, legend, ext, opts)
}

// Trials draws each line as-is.
func Trials(w io.Writer, title string, lines []Line, opts Options) error {
	var (
		series []chart.Series
		ext    = newExtent()
		width  int
	)

	for i, l := range lines {
		xs, ys := points(l.Values)
		if len(xs) == 0 {
			continue
		}
		width = max(width, len(l.Values))
		ext.add(ys...)
		series = append(series, chart.ContinuousSeries{
			Name:    l.Name,
			Style:   lineStyle(i, 1.5),
			XValues: xs,
			YValues: ys,
		})
	}

	return render(w, title, "Number of Evaluations", "Best Value Found", width, series, series, ext, opts)
}

func render(w io.Writer, title, xLabel, yLabel string, width int, series, legend []chart.Series, ext extent, opts Options) error {
	if len(series) == 0 {
		return ErrNoData
	}

	if opts.ShowOptimum {
		ref := chart.ContinuousSeries{
			Name: "Optimal Value",
			Style: chart.Style{
				StrokeColor:     drawing.ColorRed,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{6, 4},
			},
			XValues: []float64{-0.5, float64(width) - 0.5},
			YValues: []float64{opts.Optimum, opts.Optimum},
		}
		ext.add(opts.Optimum)
		series = append(series, ref)
		legend = append(legend, ref)
	}

	yMin, yMax := yRange(ext.lo, ext.hi)
	xAxis, yAxis := axes(xLabel, yLabel, width, yMin, yMax)

	ch := chart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  xAxis,
		YAxis:  yAxis,
		Series: series,
	}

	// The legend lists named lines only, not the individual CI bars.
	legendSrc := ch
	legendSrc.Series = legend
	ch.Elements = []chart.Renderable{chart.Legend(&legendSrc)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// barPositions picks about n evenly spaced checkpoints out of length.
func barPositions(length, n int) []int {
	if length <= 0 || n <= 0 {
		return nil
	}
	step := max(1, length/n)
	var out []int
	for x := 0; x < length; x += step {
		out = append(out, x)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// savePNG renders into a temp file next to path and renames it into place.
func savePNG(path string, draw func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := draw(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}
