package writer

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
	"github.com/retroenv/titxtblocks/internal/titxt"
)

const intelHexLineLength = 16

type intelHexWriter struct{}

// Write outputs the blocks as Intel HEX records. Adjacent blocks are merged
// into a single data segment.
func (intelHexWriter) Write(w io.Writer, blocks []titxt.Block) error {
	mem, err := IntelHexMemory(blocks)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	mem.DumpIntelHex(ew, intelHexLineLength)
	if ew.err != nil {
		return fmt.Errorf("writing intel hex: %w", ew.err)
	}
	return nil
}

// IntelHexMemory returns an Intel HEX memory containing all blocks.
func IntelHexMemory(blocks []titxt.Block) (*gohex.Memory, error) {
	mem := gohex.NewMemory()
	for _, block := range blocks {
		if err := mem.AddBinary(block.Address, block.Bytes()); err != nil {
			return nil, fmt.Errorf("adding block at address 0x%08X: %w", block.Address, err)
		}
	}
	return mem, nil
}

// errWriter keeps the first write error of a writer that is used by code
// that does not report it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
