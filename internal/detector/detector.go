// Package detector handles output format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/options"
)

// Detector handles output format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the output format from options or the output file name.
// An explicitly passed format takes precedence over the file extension,
// console output defaults to the listing format.
func (d *Detector) Detect(opts options.Program) options.Format {
	format, ok := options.FormatFromString(opts.Format)
	if !ok {
		format = d.detectFromFile(opts.Output)
		d.logger.Debug("Auto-detected output format",
			log.String("format", string(format)),
			log.String("file", opts.Output))
	}
	return format
}

// detectFromFile determines the output format based on file extension.
func (d *Detector) detectFromFile(filename string) options.Format {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".zst" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(filename, filepath.Ext(filename))))
	}

	switch ext {
	case ".hex", ".ihex", ".ihx":
		return options.IntelHex
	case ".bin", ".img":
		return options.Binary
	case ".blk":
		return options.Blocks
	default:
		return options.Listing
	}
}

// Extension returns the file extension used for output files of the format.
func Extension(format options.Format, compressed bool) string {
	var ext string
	switch format {
	case options.IntelHex:
		ext = ".hex"
	case options.Binary:
		ext = ".bin"
	case options.Blocks:
		ext = ".blk"
	default:
		ext = ".lst"
	}
	if compressed {
		ext += ".zst"
	}
	return ext
}
