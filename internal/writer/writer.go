// Package writer implements the output formats for converted blocks.
package writer

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/titxt"
)

// Writer defines a shared interface used by the different output formats.
type Writer interface {
	Write(w io.Writer, blocks []titxt.Block) error
}

// New returns the writer for the given output format.
func New(format options.Format, opts options.Writer) (Writer, error) {
	var w Writer
	switch format {
	case options.Listing:
		w = listingWriter{}
	case options.Binary:
		w = binaryWriter{fill: opts.Fill}
	case options.IntelHex:
		w = intelHexWriter{}
	case options.Blocks:
		w = blockStreamWriter{}
	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}

	if !opts.Zstd {
		return w, nil
	}
	switch format {
	case options.Binary, options.Blocks:
		return zstdWriter{inner: w}, nil
	default:
		return nil, fmt.Errorf("zstd compression is not supported for output format '%s'", format)
	}
}

// zstdWriter compresses the output of another writer.
type zstdWriter struct {
	inner Writer
}

func (z zstdWriter) Write(w io.Writer, blocks []titxt.Block) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}

	if err := z.inner.Write(enc, blocks); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd encoder: %w", err)
	}
	return nil
}

// NewDecompressor returns a reader that decompresses zstd data written by
// a compressing writer. The returned function releases the decoder.
func NewDecompressor(r io.Reader) (io.Reader, func(), error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return dec, dec.Close, nil
}
