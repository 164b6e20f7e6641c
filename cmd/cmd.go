// submodule cmd contains the command definition and flag set
package main

import (
	"github.com/ocrtools/ocrbatch/internal/batch"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command. The surface is deliberately flat:
// every non-flag token is an input file.
func newApp(r *Runner) *cli.Command {
	// The default version flag claims the "v" shorthand, which this
	// command uses for --verbose; keep only the long form.
	cli.VersionFlag = &cli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	}
	return &cli.Command{
		Name:      "ocrbatch",
		Usage:     "Run OCR over a batch of PDF files",
		Version:   "1.0.0",
		ArgsUsage: "<input> [input ...]",
		Writer:    r.output,
		Flags:     batchFlags(),
		Action:    r.Batch,
	}
}

func batchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log each completed file instead of drawing a progress bar",
		},
		&cli.BoolFlag{
			Name:    "overwrite",
			Aliases: []string{"o"},
			Usage:   "Write OCR output over the input file",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Report what would be written without invoking the engine",
		},
		&cli.StringFlag{
			Name:    "prefix",
			Aliases: []string{"p"},
			Value:   batch.DefaultPrefix,
			Usage:   "Output filename prefix",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   1,
			Usage:   "Maximum number of concurrent jobs",
		},
		&cli.FloatFlag{
			Name:  "rate",
			Usage: "Maximum jobs dispatched per second (0 = unlimited)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "OCR command invoked per file",
		},
		&cli.StringFlag{
			Name:  "history",
			Usage: "Path to the run-history database",
		},
		&cli.BoolFlag{
			Name:  "show-history",
			Usage: "Print recent runs from the history database and exit",
		},
	}
}
