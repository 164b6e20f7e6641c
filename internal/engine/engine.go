// Package engine defines the boundary to the external OCR engine that
// performs the per-file transformation.
//
// The batch executor depends only on the [Engine] interface; the real
// work happens in a platform-specific command ([CommandEngine]) or, in
// tests, a stub. Load failures and save failures are ordinary errors so
// the batch layer can record them without aborting the run.
package engine

import "context"

// Document is an opaque handle to a loaded input file.
type Document struct {
	Path string
}

// SaveOptions carries per-save settings for the engine.
type SaveOptions struct {
	// InPlace indicates the destination path equals the source path.
	InPlace bool
}

// Engine loads input documents and writes their transformed output.
type Engine interface {
	// Load verifies the input can be read as a document. It must not
	// mutate anything on disk.
	Load(ctx context.Context, path string) (*Document, error)

	// Save runs the transformation for doc and writes the result to
	// outputPath. A nil error means the output was written.
	Save(ctx context.Context, doc *Document, outputPath string, opts SaveOptions) error
}
