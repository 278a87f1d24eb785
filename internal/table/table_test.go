package table

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_PadsRaggedRows(t *testing.T) {
	tbl, err := Read(strings.NewReader("1,2,3\n4,5\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Rows())
	assert.Equal(t, 3, tbl.Cols())
	assert.Equal(t, "", tbl.Cell(1, 2))

	v, ok := tbl.Float(1, 2)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Read(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRead_ByteOrderMark(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeff1,10\n3,30\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", tbl.Cell(0, 0))
	assert.True(t, tbl.IsNumeric(0))

	col, ok := tbl.Column(0)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 3}, col)

	_, err = Read(strings.NewReader("\ufeff"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRead_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("1,\"2\n3,4\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestColumnClassification(t *testing.T) {
	tbl := New([][]string{
		{"1.5", "x", "", " 2 "},
		{"-3e2", "y", "NaN", "NA"},
	})

	assert.True(t, tbl.IsNumeric(0))
	assert.False(t, tbl.IsNumeric(1))
	assert.True(t, tbl.IsNumeric(2))
	assert.True(t, tbl.IsNumeric(3))

	col, ok := tbl.Column(0)
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, -300}, col)

	_, ok = tbl.Column(1)
	assert.False(t, ok)
}

func TestSliceAndTruncate(t *testing.T) {
	tbl := New([][]string{
		{"1", "2", "3"},
		{"4", "5", "6"},
		{"7", "8", "9"},
	})

	s := tbl.Slice(1, 10)
	assert.Equal(t, [][]string{{"4", "5", "6"}, {"7", "8", "9"}}, s.Records())

	tr := tbl.TruncateColumns(2)
	assert.Equal(t, 2, tr.Cols())
	assert.Equal(t, "8", tr.Cell(2, 1))

	wide := tbl.TruncateColumns(10)
	assert.Equal(t, 3, wide.Cols())
}

func TestNew_CopiesRecords(t *testing.T) {
	records := [][]string{{"1", "2"}}
	tbl := New(records)
	records[0][0] = "changed"
	assert.Equal(t, "1", tbl.Cell(0, 0))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "3", FormatFloat(3))
	assert.Equal(t, "1.5811388300841898", FormatFloat(1.5811388300841898))
	assert.Equal(t, "", FormatFloat(math.NaN()))
	assert.Equal(t, "-1e-07", FormatFloat(-1e-7))
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")

	tbl := New([][]string{{"1", "a,b"}, {"2", ""}})
	require.NoError(t, WriteFile(path, tbl))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), back.Records())
}

func TestWrite_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New([][]string{{"1", "2"}})))
	assert.Equal(t, "1,2\n", buf.String())
}
