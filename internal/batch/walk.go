// Package batch drives per-file processing over a directory of trial tables.
// Files are handled sequentially and independently: a failure on one file is
// logged and recorded, and the walk moves on to the next.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/trialstat/internal/stats"
	"github.com/cwbudde/trialstat/internal/store"
	"github.com/cwbudde/trialstat/internal/table"
)

// Recorder receives one event per file. *store.Session implements it.
type Recorder interface {
	Record(event store.FileEvent)
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	File    string // base name
	Path    string
	Output  string
	Outcome store.Outcome
	Rows    int
	Cols    int
	Err     error
}

// Event converts the result to a trace event.
func (fr FileResult) Event() store.FileEvent {
	ev := store.FileEvent{
		File:    fr.File,
		Outcome: fr.Outcome,
		Output:  fr.Output,
		Rows:    fr.Rows,
		Cols:    fr.Cols,
	}
	if fr.Err != nil {
		ev.Error = fr.Err.Error()
	}
	return ev
}

// Result collects the per-file results of a walk.
type Result struct {
	Files []FileResult
}

// Count returns how many files ended with the given outcome.
func (r *Result) Count(o store.Outcome) int {
	n := 0
	for _, fr := range r.Files {
		if fr.Outcome == o {
			n++
		}
	}
	return n
}

// ErrSkip marks a file that was deliberately not processed. Wrap it to give
// the reason.
var ErrSkip = errors.New("skipped")

// Outcome classifies a per-file error. Empty inputs and ErrSkip are skipped,
// anything else is a failure.
func Outcome(err error) store.Outcome {
	switch {
	case err == nil:
		return store.OutcomeProcessed
	case errors.Is(err, ErrSkip), errors.Is(err, table.ErrEmpty), errors.Is(err, stats.ErrEmptyTable):
		return store.OutcomeSkipped
	}
	return store.OutcomeFailed
}

// ListCSV returns the CSV files directly inside dir, sorted by name.
// The extension match is case-insensitive. A missing directory is an error.
func ListCSV(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// FileFunc processes one file. It fills in Output/Rows/Cols as it sees fit
// and returns the error that ended processing, if any.
type FileFunc func(path string, fr *FileResult) error

// Walk runs fn over every CSV file in dir. Per-file errors are logged,
// classified with Outcome and passed to rec (which may be nil); they never
// stop the walk. Walk returns an error only when dir cannot be listed or ctx
// is cancelled, in which case the partial result is returned as well.
func Walk(ctx context.Context, dir string, rec Recorder, fn FileFunc) (*Result, error) {
	files, err := ListCSV(dir)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if len(files) == 0 {
		slog.Warn("No CSV files found", "dir", dir)
		return res, nil
	}
	slog.Info("Processing directory", "dir", dir, "files", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			slog.Warn("Batch cancelled", "dir", dir, "done", len(res.Files), "remaining", len(files)-len(res.Files))
			return res, err
		}

		fr := FileResult{File: filepath.Base(path), Path: path}
		fr.Err = fn(path, &fr)
		fr.Outcome = Outcome(fr.Err)

		switch fr.Outcome {
		case store.OutcomeProcessed:
			slog.Info("File processed", "file", fr.File, "output", fr.Output)
		case store.OutcomeSkipped:
			slog.Warn("File skipped", "file", fr.File, "error", fr.Err)
		default:
			slog.Error("File failed", "file", fr.File, "error", fr.Err)
		}

		if rec != nil {
			rec.Record(fr.Event())
		}
		res.Files = append(res.Files, fr)
	}

	return res, nil
}
