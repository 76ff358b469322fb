package writer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/titxtblocks/internal/titxt"
)

type listingWriter struct{}

// Write outputs one line per block: the address followed by its words.
func (listingWriter) Write(w io.Writer, blocks []titxt.Block) error {
	buf := bufio.NewWriter(w)
	var sb strings.Builder

	for _, block := range blocks {
		sb.Reset()
		fmt.Fprintf(&sb, "%08X:", block.Address)
		for _, word := range block.Words {
			fmt.Fprintf(&sb, " %08X", word)
		}
		sb.WriteByte('\n')

		if _, err := buf.WriteString(sb.String()); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing listing: %w", err)
	}
	return nil
}

// ReadListing parses a block listing that was created by the listing writer.
func ReadListing(r io.Reader) ([]titxt.Block, error) {
	var blocks []titxt.Block
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<24)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		addressText, wordsText, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			return nil, fmt.Errorf("missing address separator at line %d", lineNum)
		}

		address, err := strconv.ParseUint(addressText, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing address at line %d: %w", lineNum, err)
		}

		fields := strings.Fields(wordsText)
		block := titxt.Block{
			Address:   uint32(address),
			WordCount: uint32(len(fields)),
			Words:     make([]uint32, len(fields)),
		}
		for i, field := range fields {
			word, err := strconv.ParseUint(field, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("parsing word %d at line %d: %w", i, lineNum, err)
			}
			block.Words[i] = uint32(word)
		}
		blocks = append(blocks, block)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	return blocks, nil
}
