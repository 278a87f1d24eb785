package stats

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/trialstat/internal/table"
)

func parse(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err, "cell %q", s)
	return v
}

func TestAppendSummary_Shape(t *testing.T) {
	in := table.New([][]string{
		{"1", "10", "100"},
		{"2", "20", "200"},
		{"3", "30", "300"},
	})

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)

	assert.Equal(t, in.Rows()+SummaryRows, out.Rows())
	assert.Equal(t, in.Cols(), out.Cols())

	// Original rows untouched.
	for r := 0; r < in.Rows(); r++ {
		assert.Equal(t, in.Row(r), out.Row(r))
	}
	// Input not mutated.
	assert.Equal(t, 3, in.Rows())
}

func TestAppendSummary_RowOrder(t *testing.T) {
	in := table.New([][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}})

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)

	want := Summarize([]float64{1, 2, 3, 4, 5}, DefaultLevel).Values()
	for i := 0; i < SummaryRows; i++ {
		got := parse(t, out.Cell(5+i, 0))
		assert.InDelta(t, want[i], got, 1e-12, "row %s", RowLabels[i])
	}
}

func TestAppendSummary_ByteOrderMarkedInput(t *testing.T) {
	in, err := table.Read(strings.NewReader("\ufeff1,10\n3,30\n"))
	require.NoError(t, err)

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)

	assert.Equal(t, "2", out.Cell(2, 0))
	assert.Equal(t, "20", out.Cell(2, 1))
}

func TestAppendSummary_RoundTrip(t *testing.T) {
	in := table.New([][]string{
		{"0.5", "1.25"},
		{"0.75", "1.5"},
		{"1", "1.75"},
		{"1.25", "2"},
	})

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)

	tail, err := TailSummary(out)
	require.NoError(t, err)
	require.Equal(t, SummaryRows, tail.Rows())

	trials, err := StripSummary(out)
	require.NoError(t, err)
	assert.Equal(t, in.Records(), trials.Records())

	for col := 0; col < in.Cols(); col++ {
		values, ok := in.Column(col)
		require.True(t, ok)
		want := Summarize(values, DefaultLevel).Values()
		for i := 0; i < SummaryRows; i++ {
			assert.Equal(t, want[i], parse(t, tail.Cell(i, col)))
		}
	}
}

func TestAppendSummary_TextColumnPassesThrough(t *testing.T) {
	in := table.New([][]string{
		{"alpha", "1"},
		{"beta", "2"},
		{"gamma", "3"},
	})

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)
	require.Equal(t, 7, out.Rows())

	assert.Equal(t, "alpha", out.Cell(0, 0))
	assert.Equal(t, "gamma", out.Cell(2, 0))
	for r := 3; r < out.Rows(); r++ {
		assert.Empty(t, out.Cell(r, 0), "row %d of text column must stay empty", r)
	}
	assert.Equal(t, "2", out.Cell(3, 1))
}

func TestAppendSummary_SingleRowWritesEmptyForUndefined(t *testing.T) {
	in := table.New([][]string{{"4", "8"}})

	out, err := AppendSummary(in, DefaultLevel)
	require.NoError(t, err)

	assert.Equal(t, "4", out.Cell(1, 0))
	assert.Empty(t, out.Cell(2, 0))
	assert.Empty(t, out.Cell(3, 0))
	assert.Empty(t, out.Cell(4, 0))
}

func TestAppendSummary_Empty(t *testing.T) {
	_, err := AppendSummary(table.New(nil), DefaultLevel)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = AppendSummary(nil, DefaultLevel)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestTailSummary_Short(t *testing.T) {
	_, err := TailSummary(table.New([][]string{{"1"}, {"2"}}))
	assert.ErrorIs(t, err, ErrShortTable)
}
