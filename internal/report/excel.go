package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/trialstat/internal/naming"
)

const maxSheetName = 31

// ErrNoEntries is returned when there is nothing to export.
var ErrNoEntries = errors.New("report: no tables to export")

// WriteExcel saves one worksheet per entry to path. Each sheet holds the
// caption, the percentile header and the four metric rows; numeric cells are
// stored as numbers.
func WriteExcel(path string, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	used := map[string]bool{}
	keepDefault := false

	for i, e := range entries {
		sheet := sheetName(e.Caption, used)
		if sheet == defaultSheet {
			keepDefault = true
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet for %s: %w", e.File, err)
		}
		if err := writeSheet(f, sheet, e); err != nil {
			return fmt.Errorf("failed to write sheet for %s: %w", e.File, err)
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(sheet)
			if err == nil {
				f.SetActiveSheet(idx)
			}
		}
	}

	if !keepDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, e Entry) error {
	if err := f.SetCellValue(sheet, "A1", "Performance Metrics for "+e.Caption); err != nil {
		return err
	}

	header := []interface{}{"Metric"}
	for _, p := range Percentiles {
		header = append(header, p)
	}
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}

	for i, row := range e.Rows {
		values := []interface{}{row.Label}
		for _, c := range row.Cells {
			values = append(values, cellValue(c))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// cellValue stores numbers as numbers and everything else as text.
func cellValue(s string) interface{} {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return v
}

// sheetName derives a unique worksheet name (at most 31 characters, no
// reserved characters) from a caption.
func sheetName(caption string, used map[string]bool) string {
	base := truncate(naming.Sanitize(caption), maxSheetName)
	if base == "" {
		base = "table"
	}

	// Sheet names are case-insensitive in a workbook.
	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := "_" + strconv.Itoa(i)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
