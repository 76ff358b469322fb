// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/detector"
	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/pipeline"
)

// ProcessFile handles the complete file processing workflow. The input is
// parsed before the output file is created, so a failed parse leaves an
// existing output file untouched.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) (err error) {
	if opts.Output != "" && sameFile(opts.Input, opts.Output) {
		return fmt.Errorf("output file %s would overwrite the input file", opts.Output)
	}

	p := pipeline.New(logger)
	result, err := p.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("converting: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if cerr := closeWriter(writer); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file %s: %w", opts.Output, cerr)
		}
	}()

	if _, err := p.ExecuteWithResult(ctx, result, opts, writer); err != nil {
		return fmt.Errorf("converting: %w", err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(opts options.Program, inputFile string) string {
	format, ok := options.FormatFromString(opts.Format)
	if !ok {
		format = options.Listing
	}

	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + detector.Extension(format, opts.Zstd)
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// closeWriter closes file outputs, the console is left open.
func closeWriter(writer io.Writer) error {
	closer, ok := writer.(io.Closer)
	if !ok || writer == os.Stdout {
		return nil
	}
	return closer.Close()
}

// sameFile reports whether both paths refer to the same file.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("titxtblocks - TI-TXT to block converter",
		log.String("version", buildinfo.Version(version, commit, date)))
}
