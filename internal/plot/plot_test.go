package plot

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/store"
	"github.com/cwbudde/trialstat/internal/table"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func writeCSV(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
}

func smallOptions() Options {
	o := DefaultOptions()
	o.Width, o.Height = 400, 300
	return o
}

func TestNewCurve(t *testing.T) {
	tbl := table.New([][]string{
		{"1", "x", "4"},
		{"3", "y", "2"},
	})

	c, err := NewCurve("A", tbl, stats.DefaultLevel)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2.0, c.Mean[0])
	assert.True(t, math.IsNaN(c.Mean[1]))
	assert.Less(t, c.Lower[2], c.Mean[2])
	assert.Greater(t, c.Upper[2], c.Mean[2])
}

func TestBarPositions(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, barPositions(3, 15))
	assert.Len(t, barPositions(81, 15), 17)
	assert.Equal(t, 0, barPositions(81, 15)[0])
	assert.Nil(t, barPositions(0, 15))
	assert.Nil(t, barPositions(10, 0))
}

func TestYRange(t *testing.T) {
	lo, hi := yRange(0, 10)
	assert.InDelta(t, -0.5, lo, 1e-12)
	assert.InDelta(t, 10.5, hi, 1e-12)

	lo, hi = yRange(3, 3)
	assert.Less(t, lo, 3.0)
	assert.Greater(t, hi, 3.0)

	ext := newExtent()
	lo, hi = yRange(ext.lo, ext.hi)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestComparison(t *testing.T) {
	c := Curve{
		Name:  "A",
		Mean:  []float64{5, 3, 1},
		Lower: []float64{4, 2, 0},
		Upper: []float64{6, 4, 2},
	}

	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, "Performance Comparison: test", []Curve{c, c}, smallOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestComparison_NoData(t *testing.T) {
	c := Curve{Name: "A", Mean: []float64{math.NaN()}}
	err := Comparison(&bytes.Buffer{}, "x", []Curve{c}, smallOptions())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTrials_FlatLine(t *testing.T) {
	opts := smallOptions()
	opts.ShowOptimum = false

	var buf bytes.Buffer
	err := Trials(&buf, "flat", []Line{{Name: "Trial 1", Values: []float64{2, 2, 2}}}, opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestTrialLines(t *testing.T) {
	lines := TrialLines(table.New([][]string{{"1", "a"}, {"2", "3"}}))
	require.Len(t, lines, 2)
	assert.Equal(t, "Trial 1", lines[0].Name)
	assert.Equal(t, "Trial 2", lines[1].Name)
	assert.True(t, math.IsNaN(lines[0].Values[1]))
	assert.Equal(t, 3.0, lines[1].Values[1])
}

type outcomes map[store.Outcome]int

func (o outcomes) Record(ev store.FileEvent) { o[ev.Outcome]++ }

func TestGroups(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "charts")

	writeCSV(t, in, "result_reals_MVE+Ackley+d2+r1.csv", "5,4,3,2\n6,4,2,1\n")
	writeCSV(t, in, "result_reals_PSO+Ackley+d2+r1.csv", "7,5,3,2\n8,6,4,2\n")
	writeCSV(t, in, "result_reals_MVE+Easom+d2.csv", "0,-0.5,-0.9,-1\n0,-0.4,-0.8,-1\n")
	writeCSV(t, in, "result_reals_MVE+Sphere+d2+narrow.csv", "1,0\n1,0\n")
	writeCSV(t, in, "empty.csv", "")

	rec := outcomes{}
	opts := GroupOptions{
		InputDir:  in,
		OutputDir: out,
		Columns:   4,
		Chart:     smallOptions(),
		Optimum: func(group string) (float64, bool) {
			if group == "Easom" {
				return -1, true
			}
			return 0, false
		},
		Recorder: rec,
	}

	res, err := Groups(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "group_Ackley_d2.png"),
		filepath.Join(out, "group_Easom.png"),
	}, res.Charts)
	for _, p := range res.Charts {
		assertPNG(t, p)
	}

	assert.Equal(t, 3, rec[store.OutcomeProcessed])
	assert.Equal(t, 2, rec[store.OutcomeSkipped])
	assert.Len(t, res.Files, 5)
}

func TestGroups_SingleProcessed(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	for _, name := range []string{"a+F+d2+x.csv", "b+G+d5+y.csv"} {
		tbl, err := stats.AppendSummary(table.New([][]string{{"3", "2", "1"}, {"4", "2", "0"}}), stats.DefaultLevel)
		require.NoError(t, err)
		require.NoError(t, table.WriteFile(filepath.Join(in, name), tbl))
	}

	res, err := Groups(context.Background(), GroupOptions{
		InputDir:  in,
		OutputDir: out,
		Processed: true,
		Single:    true,
		Chart:     smallOptions(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "group_all.png")}, res.Charts)
	assert.Equal(t, 2, res.Files[0].Rows)
}

func TestGroups_MissingDir(t *testing.T) {
	_, err := Groups(context.Background(), GroupOptions{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestTrialCharts(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	body := ""
	for i := 0; i < 7; i++ {
		body += "9,5,2,1\n"
	}
	writeCSV(t, in, "result_reals_MVE+Ackley+d2.csv", body)

	res, err := TrialCharts(context.Background(), TrialOptions{
		InputDir:  in,
		OutputDir: out,
		Chart:     smallOptions(),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, store.OutcomeProcessed, res.Files[0].Outcome)

	assertPNG(t, filepath.Join(out, "MVE+Ackley+d2_trials_1_to_5.png"))
	assertPNG(t, filepath.Join(out, "MVE+Ackley+d2_trials_6_to_7.png"))
}
