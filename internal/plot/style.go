// Package plot renders convergence charts of trial tables as PNG images.
package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette cycles through these colours, one per series.
var Palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
	drawing.ColorFromHex("aec7e8"),
	drawing.ColorFromHex("ffbb78"),
	drawing.ColorFromHex("98df8a"),
	drawing.ColorFromHex("ff9896"),
	drawing.ColorFromHex("c5b0d5"),
}

// dashes are used once the palette wraps: solid, dashed, dash-dot, dotted.
var dashes = [][]float64{
	nil,
	{6, 4},
	{6, 3, 1.5, 3},
	{1.5, 3},
}

// Options controls chart size and the reference line.
type Options struct {
	Width  int
	Height int

	// Optimum draws a dashed reference line at this value when ShowOptimum
	// is set.
	Optimum     float64
	ShowOptimum bool

	// ErrorBars is the approximate number of CI bars drawn per curve.
	ErrorBars int
}

// DefaultOptions matches the report figures: 1400x800, reference at 0,
// about 15 error bars per curve.
func DefaultOptions() Options {
	return Options{
		Width:       1400,
		Height:      800,
		Optimum:     0,
		ShowOptimum: true,
		ErrorBars:   15,
	}
}

func lineStyle(idx int, width float64) chart.Style {
	return chart.Style{
		StrokeColor:     Palette[idx%len(Palette)],
		StrokeWidth:     width,
		StrokeDashArray: dashes[(idx/len(Palette))%len(dashes)],
	}
}

func axes(xLabel, yLabel string, xMax int, yMin, yMax float64) (chart.XAxis, chart.YAxis) {
	grid := chart.Style{StrokeColor: drawing.ColorFromHex("e0e0e0"), StrokeWidth: 0.5}

	x := chart.XAxis{
		Name:           xLabel,
		Range:          &chart.ContinuousRange{Min: -0.5, Max: float64(xMax) - 0.5},
		GridMajorStyle: grid,
		ValueFormatter: func(v interface{}) string {
			return chart.FloatValueFormatterWithFormat(v, "%.0f")
		},
	}
	y := chart.YAxis{
		Name:           yLabel,
		Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
		GridMajorStyle: grid,
	}
	return x, y
}

// yRange pads [lo, hi] by 5% and widens a degenerate range so the chart
// always has a non-zero extent.
func yRange(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return -1, 1
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	pad := span * 0.05
	return lo - pad, hi + pad
}

type extent struct {
	lo, hi float64
}

func newExtent() extent {
	return extent{lo: math.Inf(1), hi: math.Inf(-1)}
}

func (e *extent) add(values ...float64) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		e.lo = math.Min(e.lo, v)
		e.hi = math.Max(e.hi, v)
	}
}

// points drops non-finite values, keeping x and y aligned.
func points(ys []float64) (xs, out []float64) {
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, float64(i))
		out = append(out, y)
	}
	return xs, out
}
