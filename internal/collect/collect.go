// Package collect gathers result CSVs scattered through an experiment tree
// into one flat directory.
package collect

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/trialstat/internal/batch"
	"github.com/cwbudde/trialstat/internal/store"
)

// Result counts the files handled by Run.
type Result struct {
	Copied     int
	Failed     int
	Duplicates int
}

// Run copies every *.csv below src into dst, keeping base names. dst is
// created if needed and is never descended into when it lies inside src.
// A file that cannot be copied is logged, recorded and counted; the walk
// continues. Later files with a name already copied overwrite the earlier
// copy and are counted as duplicates.
func Run(ctx context.Context, src, dst string, rec batch.Recorder) (*Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", src)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}

	res := &Result{}
	seen := map[string]string{}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			slog.Warn("Cannot read entry", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == absDst {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			return nil
		}

		name := d.Name()
		out := filepath.Join(dst, name)
		if prev, ok := seen[name]; ok {
			slog.Warn("Duplicate file name, overwriting", "file", name, "previous", prev, "path", path)
			res.Duplicates++
		}

		ev := store.FileEvent{File: name, Output: out}
		if err := copyFile(path, out); err != nil {
			slog.Error("Copy failed", "path", path, "error", err)
			res.Failed++
			ev.Outcome = store.OutcomeFailed
			ev.Error = err.Error()
		} else {
			slog.Debug("Copied", "path", path, "output", out)
			res.Copied++
			seen[name] = path
			ev.Outcome = store.OutcomeProcessed
		}
		if rec != nil {
			rec.Record(ev)
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	slog.Info("Collection complete", "src", src, "dst", dst, "copied", res.Copied, "failed", res.Failed)
	return res, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}
