package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/report"
)

var (
	tableIn     string
	tableOut    string
	tableFormat string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Build summary tables from processed files",
	Long: `Reads every processed CSV in --in and emits one table per file with the
summary rows sampled at 25%, 50%, 75% and 100% of the checkpoints.
--format latex writes table* environments (to stdout unless --out is set);
--format xlsx writes one worksheet per file to --out.`,
	RunE: runTable,
}

func init() {
	tableCmd.Flags().StringVar(&tableIn, "in", "", "Directory of processed CSVs (required)")
	tableCmd.Flags().StringVar(&tableOut, "out", "", "Output file (required for xlsx)")
	tableCmd.Flags().StringVar(&tableFormat, "format", "latex", "Output format: latex, xlsx")

	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	if err := requireFlag("in", tableIn); err != nil {
		return err
	}
	switch tableFormat {
	case "latex":
	case "xlsx":
		if err := requireFlag("out", tableOut); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want latex or xlsx)", tableFormat)
	}

	var (
		entries []report.Entry
		res     *batch.Result
	)
	err := withRun("table", tableIn, tableOut, func(rec batch.Recorder) error {
		var err error
		entries, res, err = report.Collect(cmd.Context(), tableIn, rec)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return report.ErrNoEntries
		}
		return writeTables(entries)
	})
	if tableOut != "" {
		printResult(res)
	}
	return err
}

func writeTables(entries []report.Entry) error {
	if tableFormat == "xlsx" {
		if err := os.MkdirAll(filepath.Dir(tableOut), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := report.WriteExcel(tableOut, entries); err != nil {
			return err
		}
		slog.Info("Workbook saved", "path", tableOut, "tables", len(entries))
		return nil
	}

	if tableOut == "" {
		return writeLaTeX(os.Stdout, entries)
	}

	if err := os.MkdirAll(filepath.Dir(tableOut), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(tableOut)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	if err := writeLaTeX(f, entries); err != nil {
		return err
	}
	slog.Info("LaTeX tables saved", "path", tableOut, "tables", len(entries))
	return f.Close()
}

func writeLaTeX(w io.Writer, entries []report.Entry) error {
	bw := bufio.NewWriter(w)
	if err := report.WriteLaTeX(bw, entries); err != nil {
		return err
	}
	return bw.Flush()
}
