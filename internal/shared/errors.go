package shared

import "fmt"

var (
	// Configuration errors abort the run before any job is dispatched.
	ErrNoInputs        = fmt.Errorf("no input files given")
	ErrInvalidJobs     = fmt.Errorf("jobs must be at least 1")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")

	// Per-job errors travel as JobResult data, never as program errors.
	ErrLoadFailed = fmt.Errorf("could not load document")
	ErrSaveFailed = fmt.Errorf("could not save document")

	// History errors
	ErrNoHistory = fmt.Errorf("no history database configured")
)
