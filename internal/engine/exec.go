package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ocrtools/ocrbatch/internal/shared"
)

// pdfMagic is the header every well-formed PDF starts with.
var pdfMagic = []byte("%PDF-")

// CommandEngine shells out to an external OCR command for each save.
// The command is invoked as `command [args...] <input> <output>` with
// stderr captured, so a noisy engine cannot tear the progress line.
type CommandEngine struct {
	command string
	args    []string
	logger  *log.Logger
}

// NewCommandEngine creates a CommandEngine for the given command line.
// A nil logger discards engine diagnostics.
func NewCommandEngine(command string, args []string, logger *log.Logger) *CommandEngine {
	if logger == nil {
		logger = shared.NewQuietLogger()
	}
	return &CommandEngine{command: command, args: args, logger: logger}
}

// Load opens the file and validates the PDF header. It does not parse
// the document; the external command does its own parsing on save.
func (e *CommandEngine) Load(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrLoadFailed, path, err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrLoadFailed, path, err)
	}
	if !bytes.Equal(header, pdfMagic) {
		return nil, fmt.Errorf("%w: %s: not a PDF", shared.ErrLoadFailed, path)
	}

	return &Document{Path: path}, nil
}

// Save runs the external command against the loaded document.
func (e *CommandEngine) Save(ctx context.Context, doc *Document, outputPath string, opts SaveOptions) error {
	args := append(append([]string{}, e.args...), doc.Path, outputPath)
	cmd := exec.CommandContext(ctx, e.command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			e.logger.Error("engine output", "path", doc.Path, "stderr", msg)
		}
		return fmt.Errorf("%w: %s: %v", shared.ErrSaveFailed, outputPath, err)
	}
	return nil
}
