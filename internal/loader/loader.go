// Package loader handles TI-TXT file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/titxt"
)

// Loader handles loading and parsing TI-TXT files from disk.
type Loader struct{}

// New creates a new TI-TXT loader.
func New() *Loader {
	return &Loader{}
}

// Load opens the input file of the options and parses it into blocks.
// The file is closed before returning on every path.
func (l *Loader) Load(opts options.Program) (*titxt.Result, error) {
	if opts.WordsPerBlock > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d words per block exceed 32 bits",
			titxt.ErrInvalidConfiguration, opts.WordsPerBlock)
	}

	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	result, err := titxt.Parse(file, uint32(opts.WordsPerBlock))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", opts.Input, err)
	}
	return result, nil
}

// LoadFromBytes parses an in memory TI-TXT hex dump.
func (l *Loader) LoadFromBytes(data []byte, wordsPerBlock uint32) (*titxt.Result, error) {
	result, err := titxt.Parse(bytes.NewReader(data), wordsPerBlock)
	if err != nil {
		return nil, fmt.Errorf("parsing data: %w", err)
	}
	return result, nil
}
