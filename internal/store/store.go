package store

// Store defines persistence for batch run logs.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return ErrNotFound if a run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun atomically saves the manifest of a run, overwriting any
	// previous manifest with the same ID.
	SaveRun(run *Run) error

	// LoadRun retrieves the manifest of a run.
	// Returns ErrNotFound if no manifest exists for this ID.
	LoadRun(runID string) (*Run, error)

	// ListRuns returns metadata for all stored runs. Unreadable manifests
	// are skipped.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the run directory, including its file trace.
	// Returns ErrNotFound if the run does not exist.
	DeleteRun(runID string) error
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
