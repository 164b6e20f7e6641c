package batch

import "path/filepath"

// DefaultPrefix is prepended to output filenames unless overridden.
const DefaultPrefix = "OCR_"

// OutputPathFor derives the output path for an input by prefixing its
// filename, keeping the directory. It operates purely on strings and
// never touches the filesystem.
func OutputPathFor(inputPath, prefix string) string {
	dir, file := filepath.Split(inputPath)
	return dir + prefix + file
}
