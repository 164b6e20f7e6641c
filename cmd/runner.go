package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ocrtools/ocrbatch/internal/batch"
	"github.com/ocrtools/ocrbatch/internal/engine"
	"github.com/ocrtools/ocrbatch/internal/history"
	"github.com/ocrtools/ocrbatch/internal/shared"
	"github.com/urfave/cli/v3"
)

// exitError carries the process exit status for main to apply.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func exitf(code int, format string, args ...any) *exitError {
	return &exitError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Runner holds all dependencies for the CLI and provides the command
// action methods.
type Runner struct {
	config *shared.Config
	engine engine.Engine
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Engine engine.Engine
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided dependencies, filling
// in defaults for any that are nil. A nil Engine means the external
// command engine is built per run from the active configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		engine: opts.Engine,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// Batch is the root command action. It interprets flags and positional
// arguments into a batch.RunConfig, runs the batch, records history, and
// maps the tally onto the process exit status.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("config") {
		config, err := shared.LoadConfig(cmd.String("config"))
		if err != nil {
			return exitf(1, "Error: %v", err)
		}
		r.config = config
	}
	if cmd.IsSet("engine") {
		r.config.Engine.Command = cmd.String("engine")
	}

	if cmd.Bool("show-history") {
		return r.showHistory(ctx, cmd)
	}

	cfg := r.buildRunConfig(cmd)
	if len(cfg.Inputs) == 0 {
		cli.ShowAppHelp(cmd)
		return exitf(1, "Error: %v", shared.ErrNoInputs)
	}
	if err := cfg.Validate(); err != nil {
		return exitf(1, "Error: %v", err)
	}

	runLogger := r.batchLogger(cfg.Verbose)
	reporter := batch.NewReporter(r.output, cfg)
	executor := batch.NewExecutor(r.runEngine(runLogger), reporter, runLogger)

	started := time.Now()
	summary, err := executor.Run(ctx, cfg)
	if err != nil {
		return exitf(1, "Error: %v", err)
	}

	r.recordHistory(ctx, cmd, started, cfg, summary)

	if code := summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// buildRunConfig merges config-file defaults with explicitly set flags
// and the positional inputs.
func (r *Runner) buildRunConfig(cmd *cli.Command) batch.RunConfig {
	cfg := batch.RunConfig{
		Verbose:   r.config.Run.Verbose,
		Overwrite: r.config.Output.Overwrite,
		DryRun:    cmd.Bool("dry-run"),
		Prefix:    r.config.Output.Prefix,
		Jobs:      r.config.Run.Jobs,
		Rate:      r.config.Run.Rate,
		Inputs:    cmd.Args().Slice(),
	}

	if cmd.Bool("verbose") {
		cfg.Verbose = true
	}
	if cmd.Bool("overwrite") {
		cfg.Overwrite = true
	}
	if cmd.IsSet("prefix") {
		cfg.Prefix = cmd.String("prefix")
	}
	if cmd.IsSet("jobs") {
		cfg.Jobs = int(cmd.Int("jobs"))
	}
	if cmd.IsSet("rate") {
		cfg.Rate = float64(cmd.Float("rate"))
	}
	if cfg.Prefix == "" {
		cfg.Prefix = batch.DefaultPrefix
	}
	if cfg.Jobs == 0 && !cmd.IsSet("jobs") {
		cfg.Jobs = 1
	}

	return cfg
}

// batchLogger returns the diagnostic logger for a run. Outside verbose
// mode every diagnostic is discarded so nothing tears the progress bar
// redraw line.
func (r *Runner) batchLogger(verbose bool) *log.Logger {
	if !verbose {
		return shared.NewQuietLogger()
	}
	logger := shared.NewLogger(nil)
	shared.SetLogLevel(logger, log.DebugLevel)
	return logger
}

// runEngine returns the injected engine, or builds the external command
// engine from the active configuration.
func (r *Runner) runEngine(logger *log.Logger) engine.Engine {
	if r.engine != nil {
		return r.engine
	}
	return engine.NewCommandEngine(r.config.Engine.Command, r.config.Engine.Args, logger)
}

// historyPath resolves the run-history database path; empty disables it.
func (r *Runner) historyPath(cmd *cli.Command) string {
	if cmd.IsSet("history") {
		return cmd.String("history")
	}
	return r.config.History.Path
}

// recordHistory persists one row for the finished run. History failures
// are logged and swallowed; they never affect the exit status.
func (r *Runner) recordHistory(ctx context.Context, cmd *cli.Command, started time.Time, cfg batch.RunConfig, sum batch.Summary) {
	path := r.historyPath(cmd)
	if path == "" {
		return
	}

	store, err := history.Open(path)
	if err != nil {
		r.logger.Warn("history disabled", "err", err)
		return
	}
	defer store.Close()

	rec := history.RunRecord{
		ID:        shared.GenerateID(),
		StartedAt: started,
		Duration:  sum.Elapsed,
		Total:     sum.Total,
		Completed: sum.Completed,
		Failed:    sum.Failed,
		DryRun:    cfg.DryRun,
	}
	if err := store.RecordRun(ctx, rec); err != nil {
		r.logger.Warn("failed to record run", "err", err)
	}
}

// showHistory prints recent runs from the history database.
func (r *Runner) showHistory(ctx context.Context, cmd *cli.Command) error {
	path := r.historyPath(cmd)
	if path == "" {
		return exitf(1, "Error: %v", shared.ErrNoHistory)
	}

	store, err := history.Open(path)
	if err != nil {
		return exitf(1, "Error: %v", err)
	}
	defer store.Close()

	runs, err := store.Recent(ctx, 20)
	if err != nil {
		return exitf(1, "Error: %v", err)
	}

	for _, rec := range runs {
		status := "ok"
		if rec.Failed > 0 {
			status = fmt.Sprintf("%d failed", rec.Failed)
		}
		if rec.DryRun {
			status += " (dry run)"
		}
		fmt.Fprintf(r.output, "%s  %s  %d/%d  %s  %.2fs\n",
			rec.StartedAt.Format(time.RFC3339), rec.ID, rec.Completed, rec.Total, status, rec.Duration.Seconds())
	}
	return nil
}
