package store

import (
	"time"

	"github.com/google/uuid"
)

// Outcome of processing one input file.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Run is the manifest of one batch invocation (summarize, table, plot, ...).
// Per-file detail lives in the run's trace, not in the manifest.
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	InputDir  string    `json:"inputDir"`
	OutputDir string    `json:"outputDir"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished,omitzero"`

	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	// Error is set when the run as a whole was aborted.
	Error string `json:"error,omitempty"`
}

// RunInfo is the listing view of a run.
type RunInfo struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	InputDir  string    `json:"inputDir"`
	Started   time.Time `json:"started"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// NewRun starts a run manifest with a fresh ID.
func NewRun(command, inputDir, outputDir string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Command:   command,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Started:   time.Now(),
	}
}

// Record counts one file outcome.
func (r *Run) Record(o Outcome) {
	switch o {
	case OutcomeProcessed:
		r.Processed++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// Finish stamps the end time and, if err is non-nil, the abort reason.
func (r *Run) Finish(err error) {
	r.Finished = time.Now()
	if err != nil {
		r.Error = err.Error()
	}
}

// Total is the number of files the run looked at.
func (r *Run) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// ToInfo converts a manifest to its listing view.
func (r *Run) ToInfo() RunInfo {
	return RunInfo{
		ID:        r.ID,
		Command:   r.Command,
		InputDir:  r.InputDir,
		Started:   r.Started,
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
	}
}

// Validate checks that the manifest can be persisted.
func (r *Run) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return &ValidationError{Field: "ID", Reason: "must be a UUID"}
	}
	if r.Command == "" {
		return &ValidationError{Field: "Command", Reason: "cannot be empty"}
	}
	if r.Started.IsZero() {
		return &ValidationError{Field: "Started", Reason: "cannot be zero"}
	}
	if r.Processed < 0 || r.Skipped < 0 || r.Failed < 0 {
		return &ValidationError{Field: "counts", Reason: "cannot be negative"}
	}
	if !r.Finished.IsZero() && r.Finished.Before(r.Started) {
		return &ValidationError{Field: "Finished", Reason: "before Started"}
	}
	return nil
}

// ValidationError represents a manifest validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
