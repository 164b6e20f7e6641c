package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ocrtools/ocrbatch/internal/engine"
	"github.com/ocrtools/ocrbatch/internal/shared"
	"golang.org/x/time/rate"
)

// RunConfig describes one batch run. It is immutable once built and is
// owned by the Executor for the duration of the run.
type RunConfig struct {
	Verbose   bool
	Overwrite bool
	DryRun    bool
	Prefix    string   // output filename prefix, default "OCR_"
	Jobs      int      // max concurrent jobs, must be >= 1
	Rate      float64  // max dispatches per second, 0 = unlimited
	Inputs    []string // input paths in CLI order, must be non-empty
}

// Validate checks the constraints a flag parser cannot enforce.
func (c RunConfig) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidJobs, c.Jobs)
	}
	if len(c.Inputs) == 0 {
		return shared.ErrNoInputs
	}
	return nil
}

// Job is one input file's planned transformation with its bound output
// path. It is created at dispatch time and consumed by one worker.
type Job struct {
	InputPath  string
	OutputPath string
	DryRun     bool
}

// JobResult is produced by a worker and consumed exactly once by the
// reporting lane. It is never mutated after creation.
type JobResult struct {
	Job     Job
	Success bool
	Message string // failure diagnostic, empty on success
}

// Executor owns the worker pool and the serialized reporting lane.
type Executor struct {
	engine   engine.Engine
	reporter Reporter
	logger   *log.Logger
}

// NewExecutor creates an Executor. A nil reporter discards progress
// events; a nil logger discards diagnostics.
func NewExecutor(eng engine.Engine, rep Reporter, logger *log.Logger) *Executor {
	if rep == nil {
		rep = NopReporter{}
	}
	if logger == nil {
		logger = shared.NewQuietLogger()
	}
	return &Executor{engine: eng, reporter: rep, logger: logger}
}

// Run executes exactly one job per input with at most cfg.Jobs in flight
// and returns the final tally once every result has been reported.
//
// The slot channel is the sole concurrency throttle: dispatch blocks on
// acquiring a slot, never on a worker's result being processed. Workers
// release their slot before sending their result, so result reporting
// cannot stall the pool. The drain loop below runs on the calling
// goroutine and is the single serialized consumer of results; it is the
// only code that touches the tally or the reporter.
func (e *Executor) Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	total := len(cfg.Inputs)
	start := time.Now()
	e.reporter.Start(total)

	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}

	slots := make(chan struct{}, cfg.Jobs)
	results := make(chan JobResult)

	var wg sync.WaitGroup
	go func() {
		for _, input := range cfg.Inputs {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					break
				}
			}

			slots <- struct{}{}
			wg.Add(1)
			go func(job Job) {
				res := e.runJob(ctx, job)
				<-slots
				results <- res
				wg.Done()
			}(planJob(input, cfg))
		}

		wg.Wait()
		close(results)
	}()

	tally := NewTally(total)
	for res := range results {
		tally.Record(res)
		e.reporter.Report(res, tally.Completed(), total)
	}

	elapsed := time.Since(start)
	e.reporter.Finish(elapsed)
	return tally.Summary(elapsed), nil
}

// planJob binds an input path to its output path.
func planJob(input string, cfg RunConfig) Job {
	output := input
	if !cfg.Overwrite {
		output = OutputPathFor(input, cfg.Prefix)
	}
	return Job{InputPath: input, OutputPath: output, DryRun: cfg.DryRun}
}

// runJob performs one job's work. Per-job failures come back as data,
// never as errors; the batch always continues.
func (e *Executor) runJob(ctx context.Context, job Job) JobResult {
	doc, err := e.engine.Load(ctx, job.InputPath)
	if err != nil {
		msg := fmt.Sprintf("Could not load PDF at %s", job.InputPath)
		e.logger.Error(msg, "err", err)
		return JobResult{Job: job, Message: msg}
	}

	if job.DryRun {
		return JobResult{Job: job, Success: true}
	}

	opts := engine.SaveOptions{InPlace: job.InputPath == job.OutputPath}
	if err := e.engine.Save(ctx, doc, job.OutputPath, opts); err != nil {
		e.logger.Error("save failed", "path", job.OutputPath, "err", err)
		return JobResult{Job: job, Message: err.Error()}
	}

	return JobResult{Job: job, Success: true}
}
