package store

import (
	"errors"
	"fmt"
	"log/slog"
)

// Session ties a run manifest to its trace while a command is running.
// Record counts each file outcome and appends it to the trace; End writes
// the final manifest.
type Session struct {
	store *FSStore
	run   *Run
	trace *TraceWriter
}

// Begin starts a new run and opens its trace.
func Begin(fs *FSStore, command, inputDir, outputDir string) (*Session, error) {
	run := NewRun(command, inputDir, outputDir)

	trace, err := NewTraceWriter(fs.BaseDir(), run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to open run trace: %w", err)
	}
	if err := fs.SaveRun(run); err != nil {
		trace.Close()
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	slog.Debug("Run started", "run_id", run.ID, "command", command, "trace", trace.Path())
	return &Session{store: fs, run: run, trace: trace}, nil
}

// Run returns the manifest being recorded.
func (s *Session) Run() *Run {
	return s.run
}

// Record counts the event and appends it to the trace. Trace write failures
// are logged; they never fail the file being recorded.
func (s *Session) Record(event FileEvent) {
	s.run.Record(event.Outcome)
	if err := s.trace.Write(event); err != nil {
		slog.Warn("Failed to write run trace", "run_id", s.run.ID, "file", event.File, "error", err)
	}
}

// End closes the trace and saves the final manifest. runErr is the error
// that aborted the run, if any.
func (s *Session) End(runErr error) error {
	s.run.Finish(runErr)

	closeErr := s.trace.Close()
	saveErr := s.store.SaveRun(s.run)

	slog.Debug("Run finished",
		"run_id", s.run.ID,
		"processed", s.run.Processed,
		"skipped", s.run.Skipped,
		"failed", s.run.Failed,
	)
	return errors.Join(closeErr, saveErr)
}
