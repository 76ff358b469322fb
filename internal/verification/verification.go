// Package verification verifies that the written output file recreates the parsed blocks.
package verification

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/titxt"
	"github.com/retroenv/titxtblocks/internal/writer"
)

const maxReportedMismatches = 10

// VerifyOutput reads back the output file and verifies that it decodes to
// the same memory contents as the given blocks.
func VerifyOutput(logger *log.Logger, opts options.Program, format options.Format, blocks []titxt.Block) error {
	file, err := os.Open(opts.Output)
	if err != nil {
		return fmt.Errorf("opening output file '%s': %w", opts.Output, err)
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file
	if opts.Zstd {
		dec, release, err := writer.NewDecompressor(file)
		if err != nil {
			return err
		}
		defer release()
		reader = dec
	}

	return Verify(logger, reader, format, byte(opts.Fill), blocks)
}

// Verify decodes the output in the given format and compares it to the blocks.
func Verify(logger *log.Logger, reader io.Reader, format options.Format, fill byte, blocks []titxt.Block) error {
	var expected []byte
	var base uint32
	if len(blocks) > 0 {
		var err error
		base, expected, err = writer.Image(blocks, fill)
		if err != nil {
			return fmt.Errorf("building expected image: %w", err)
		}
	}

	actual, err := readImage(reader, format, base, uint32(len(expected)), fill, blocks)
	if err != nil {
		return err
	}

	if err := checkBufferEqual(logger, base, expected, actual); err != nil {
		return fmt.Errorf("%s output mismatch: %w", format, err)
	}
	return nil
}

func readImage(reader io.Reader, format options.Format, base, size uint32, fill byte,
	blocks []titxt.Block) ([]byte, error) {

	switch format {
	case options.Binary:
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("reading binary image: %w", err)
		}
		return data, nil

	case options.IntelHex:
		mem := gohex.NewMemory()
		if err := mem.ParseIntelHex(reader); err != nil {
			return nil, fmt.Errorf("parsing intel hex: %w", err)
		}
		if size == 0 {
			if len(mem.GetDataSegments()) != 0 {
				return nil, fmt.Errorf("intel hex contains %d unexpected data segments", len(mem.GetDataSegments()))
			}
			return nil, nil
		}
		return mem.ToBinary(base, size, fill), nil

	case options.Listing:
		decoded, err := writer.ReadListing(reader)
		if err != nil {
			return nil, err
		}
		return decodedImage(decoded, blocks, fill)

	case options.Blocks:
		decoded, err := writer.ReadBlockStream(reader)
		if err != nil {
			return nil, err
		}
		return decodedImage(decoded, blocks, fill)

	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
}

// decodedImage checks the block layout of decoded blocks and returns their image.
func decodedImage(decoded, blocks []titxt.Block, fill byte) ([]byte, error) {
	if len(decoded) != len(blocks) {
		return nil, fmt.Errorf("mismatched block count, %d != %d", len(blocks), len(decoded))
	}
	if len(decoded) == 0 {
		return nil, nil
	}

	for i, block := range decoded {
		if block.Address != blocks[i].Address || block.WordCount != blocks[i].WordCount {
			return nil, fmt.Errorf("block %d mismatch, expected %d words at 0x%08X but got %d words at 0x%08X",
				i, blocks[i].WordCount, blocks[i].Address, block.WordCount, block.Address)
		}
	}

	_, data, err := writer.Image(decoded, fill)
	if err != nil {
		return nil, fmt.Errorf("building decoded image: %w", err)
	}
	return data, nil
}

func checkBufferEqual(logger *log.Logger, base uint32, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}
	if bytes.Equal(input, output) {
		return nil
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxReportedMismatches {
			logger.Error("Address mismatch",
				log.Hex("address", base+uint32(i)),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	return fmt.Errorf("%d address mismatches", diffs)
}
