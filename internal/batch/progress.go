package batch

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Reporter presents job completions. Implementations are driven solely
// from the serialized reporting lane, so they need no locking.
type Reporter interface {
	Start(total int)
	Report(res JobResult, completed, total int)
	Finish(elapsed time.Duration)
}

// NewReporter selects the presentation mode for a run: per-item lines in
// verbose mode, a would-save listing for non-verbose dry runs, or the
// in-place progress bar otherwise. The mode never changes mid-run.
func NewReporter(w io.Writer, cfg RunConfig) Reporter {
	switch {
	case cfg.Verbose:
		return NewVerboseReporter(w)
	case cfg.DryRun:
		return NewDryRunReporter(w)
	default:
		return NewBarReporter(w)
	}
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) Start(int)                  {}
func (NopReporter) Report(JobResult, int, int) {}
func (NopReporter) Finish(time.Duration)       {}

// percent returns the floored completion percentage.
func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// VerboseReporter prints one line per completion and the total elapsed
// time at the end of the run.
type VerboseReporter struct {
	w      io.Writer
	saved  lipgloss.Style
	failed lipgloss.Style
	would  lipgloss.Style
}

// NewVerboseReporter creates a VerboseReporter writing to w. Styles use
// a renderer bound to w, so non-terminal writers get plain text.
func NewVerboseReporter(w io.Writer) *VerboseReporter {
	r := lipgloss.NewRenderer(w)
	return &VerboseReporter{
		w:      w,
		saved:  r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		failed: r.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		would:  r.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	}
}

func (v *VerboseReporter) Start(int) {}

// Report prints "<verb>: <path> (<completed>/<total>, <percent>%)". The
// path is the output path on success and the input path on failure.
func (v *VerboseReporter) Report(res JobResult, completed, total int) {
	verb, path := v.saved.Render("Saved"), res.Job.OutputPath
	switch {
	case !res.Success:
		verb, path = v.failed.Render("Failed"), res.Job.InputPath
	case res.Job.DryRun:
		verb = v.would.Render("Would save")
	}
	fmt.Fprintf(v.w, "%s: %s (%d/%d, %d%%)\n", verb, path, completed, total, percent(completed, total))
}

func (v *VerboseReporter) Finish(elapsed time.Duration) {
	fmt.Fprintf(v.w, "Completed in %.2f seconds\n", elapsed.Seconds())
}

// barWidth is the fixed width of the quiet-mode progress bar.
const barWidth = 30

// BarReporter renders a fixed-width progress bar redrawn in place after
// every completion, with a trailing newline only once the run finishes.
type BarReporter struct {
	w       io.Writer
	bar     progress.Model
	counter lipgloss.Style
}

// NewBarReporter creates a BarReporter writing to w.
func NewBarReporter(w io.Writer) *BarReporter {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	r := lipgloss.NewRenderer(w)
	return &BarReporter{w: w, bar: bar, counter: r.NewStyle().Faint(true)}
}

func (b *BarReporter) Start(total int) {
	b.render(0, total)
}

func (b *BarReporter) Report(_ JobResult, completed, total int) {
	b.render(completed, total)
}

func (b *BarReporter) Finish(time.Duration) {}

func (b *BarReporter) render(completed, total int) {
	frac := 0.0
	if total > 0 {
		frac = float64(completed) / float64(total)
	}

	counter := b.counter.Render(fmt.Sprintf("(%d/%d)", completed, total))
	fmt.Fprintf(b.w, "\r%s %3d%% %s", b.bar.ViewAs(frac), percent(completed, total), counter)

	if total > 0 && completed == total {
		fmt.Fprintln(b.w)
	}
}

// DryRunReporter lists what a real run would write, one line per
// would-be success. Failures surface only through the diagnostic stream.
type DryRunReporter struct {
	w io.Writer
}

// NewDryRunReporter creates a DryRunReporter writing to w.
func NewDryRunReporter(w io.Writer) *DryRunReporter {
	return &DryRunReporter{w: w}
}

func (d *DryRunReporter) Start(int) {}

func (d *DryRunReporter) Report(res JobResult, _, _ int) {
	if res.Success {
		fmt.Fprintf(d.w, "Would save: %s\n", res.Job.OutputPath)
	}
}

func (d *DryRunReporter) Finish(time.Duration) {}
