package writer

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/titxtblocks/internal/titxt"
)

// Block stream container layout, all values little-endian:
//
//	magic "TBLK", version byte
//	per block: address u32, word count u32, words u32 * word count
const blockStreamVersion = 1

var blockStreamMagic = []byte("TBLK")

// ErrInvalidBlockStream is returned for data that is not a block stream.
var ErrInvalidBlockStream = errors.New("invalid block stream")

type blockStreamWriter struct{}

func (blockStreamWriter) Write(w io.Writer, blocks []titxt.Block) error {
	buf := bufio.NewWriter(w)

	header := append(bytes.Clone(blockStreamMagic), blockStreamVersion)
	if _, err := buf.Write(header); err != nil {
		return fmt.Errorf("writing block stream header: %w", err)
	}

	for _, block := range blocks {
		if err := binary.Write(buf, binary.LittleEndian, [2]uint32{block.Address, block.WordCount}); err != nil {
			return fmt.Errorf("writing block header: %w", err)
		}
		if err := binary.Write(buf, binary.LittleEndian, block.Words); err != nil {
			return fmt.Errorf("writing block words: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing block stream: %w", err)
	}
	return nil
}

// ReadBlockStream decodes a block stream container.
func ReadBlockStream(r io.Reader) ([]titxt.Block, error) {
	buf := bufio.NewReader(r)

	header := make([]byte, len(blockStreamMagic)+1)
	if _, err := io.ReadFull(buf, header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrInvalidBlockStream, err)
	}
	if !bytes.Equal(header[:len(blockStreamMagic)], blockStreamMagic) {
		return nil, fmt.Errorf("%w: magic mismatch", ErrInvalidBlockStream)
	}
	if version := header[len(blockStreamMagic)]; version != blockStreamVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBlockStream, version)
	}

	var blocks []titxt.Block
	for {
		var blockHeader [2]uint32
		err := binary.Read(buf, binary.LittleEndian, &blockHeader)
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading block header: %w", ErrInvalidBlockStream, err)
		}

		block := titxt.Block{
			Address:   blockHeader[0],
			WordCount: blockHeader[1],
		}
		// the word count is untrusted input, allocate in chunks
		for remaining := block.WordCount; remaining > 0; {
			chunk := make([]uint32, min(remaining, 4096))
			if err := binary.Read(buf, binary.LittleEndian, chunk); err != nil {
				return nil, fmt.Errorf("%w: reading block words: %w", ErrInvalidBlockStream, err)
			}
			block.Words = append(block.Words, chunk...)
			remaining -= uint32(len(chunk))
		}
		blocks = append(blocks, block)
	}
}
