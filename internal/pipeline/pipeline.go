// Package pipeline orchestrates the conversion workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/detector"
	"github.com/retroenv/titxtblocks/internal/loader"
	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/titxt"
	"github.com/retroenv/titxtblocks/internal/verification"
	"github.com/retroenv/titxtblocks/internal/writer"
)

// Pipeline orchestrates the complete conversion workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete conversion pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, w io.Writer) (*titxt.Result, error) {
	result, err := p.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	return p.ExecuteWithResult(ctx, result, opts, w)
}

// Load parses the input file of the options.
func (p *Pipeline) Load(ctx context.Context, opts options.Program) (*titxt.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("starting conversion: %w", err)
	}

	result, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	return result, nil
}

// ExecuteWithResult runs the output stages of the pipeline with an already parsed input.
// This is useful for testing and programmatic usage where the input is already in memory.
func (p *Pipeline) ExecuteWithResult(ctx context.Context, result *titxt.Result, opts options.Program,
	w io.Writer) (*titxt.Result, error) {

	format := p.detector.Detect(opts)
	p.printInfo(opts, format, result)
	p.reportAnomalies(opts, result.Stats)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	out, err := writer.New(format, options.NewWriter(opts))
	if err != nil {
		return nil, fmt.Errorf("creating writer: %w", err)
	}
	if err := out.Write(w, result.Blocks); err != nil {
		return nil, fmt.Errorf("writing %s output: %w", format, err)
	}

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, opts, format, result.Blocks); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return result, nil
}

// printInfo prints information about the parsed input.
func (p *Pipeline) printInfo(opts options.Program, format options.Format, result *titxt.Result) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Converting TI-TXT file",
		log.String("file", opts.Input),
		log.String("format", string(format)),
		log.Int("words_per_block", int(opts.WordsPerBlock)),
		log.Int("sections", result.Stats.Sections),
		log.Int("blocks", result.Stats.Blocks),
	)
	p.logger.Debug("Parse statistics",
		log.Int("lines", result.Stats.Lines),
		log.Int("data_bytes", result.Stats.DataBytes),
		log.Int("padding_bytes", result.Stats.PaddingBytes),
	)
}

// reportAnomalies logs tolerated input conditions that might point to a broken dump.
func (p *Pipeline) reportAnomalies(opts options.Program, stats titxt.Stats) {
	if stats.Discarded > 0 {
		p.logger.Warn("Data without preceding address directive was discarded",
			log.String("file", opts.Input),
			log.Int("bytes", stats.Discarded))
	}
	if stats.DroppedBytes > 0 {
		p.logger.Warn("Partial blocks before address directives were dropped",
			log.String("file", opts.Input),
			log.Int("bytes", stats.DroppedBytes))
	}
	if stats.Wrapped > 0 {
		p.logger.Warn("Block address wrapped past the 32-bit address space",
			log.String("file", opts.Input),
			log.Int("count", stats.Wrapped))
	}
	if !stats.Terminated {
		p.logger.Debug("Input has no end of stream marker", log.String("file", opts.Input))
	}
}
