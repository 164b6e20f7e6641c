package batch

import "time"

// Tally tracks the completed and failed counters for one run. It is
// owned by the executor's drain loop; workers never see it, so no
// locking is needed.
type Tally struct {
	total     int
	completed int
	failed    int
}

// NewTally creates a Tally for a run of total jobs.
func NewTally(total int) *Tally {
	return &Tally{total: total}
}

// Record folds one result into the counters. Calls must be serialized;
// the executor's drain loop is the only caller.
func (t *Tally) Record(res JobResult) {
	t.completed++
	if !res.Success {
		t.failed++
	}
}

// Completed returns the number of jobs recorded so far.
func (t *Tally) Completed() int { return t.completed }

// Failed returns the number of failed jobs recorded so far.
func (t *Tally) Failed() int { return t.failed }

// Done reports whether every job has been recorded.
func (t *Tally) Done() bool { return t.completed == t.total }

// ExitCode returns the process exit status for the run: 0 when every
// job succeeded, 1 otherwise.
func (t *Tally) ExitCode() int {
	if t.failed == 0 {
		return 0
	}
	return 1
}

// Summary snapshots the tally into an immutable result.
func (t *Tally) Summary(elapsed time.Duration) Summary {
	return Summary{
		Total:     t.total,
		Completed: t.completed,
		Failed:    t.failed,
		Elapsed:   elapsed,
	}
}

// Summary is the final aggregate of a batch run.
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Elapsed   time.Duration
}

// ExitCode returns the process exit status the summary maps to.
func (s Summary) ExitCode() int {
	if s.Failed == 0 {
		return 0
	}
	return 1
}
