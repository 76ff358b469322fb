// Package titxt parses TI-TXT hex dumps into fixed-size blocks of
// little-endian 32-bit words.
package titxt

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"slices"
)

// Block is a fixed-size unit of words tagged with the byte address of its first word.
type Block struct {
	Address   uint32
	WordCount uint32
	Words     []uint32
}

// Size returns the size of the block in bytes.
func (b Block) Size() uint32 {
	return b.WordCount * WordSize
}

// Bytes returns the little-endian byte image of the block words.
func (b Block) Bytes() []byte {
	return unpackWords(b.Words)
}

// Stats contains counters collected while parsing.
type Stats struct {
	Lines        int  // lines read, including blank lines and the sentinel
	Sections     int  // address directives processed
	Blocks       int  // blocks produced
	DataBytes    int  // bytes decoded from data lines
	PaddingBytes int  // zero bytes appended to the final block
	DroppedBytes int  // partial block bytes discarded by a following address directive
	Discarded    int  // bytes read before any address directive
	Wrapped      int  // times the address counter wrapped past 0xFFFFFFFF
	Terminated   bool // input ended with the q sentinel
}

// Result of a parse.
type Result struct {
	Blocks []Block
	Stats  Stats
}

// Parse reads a TI-TXT hex dump from the reader. The reader is consumed up to
// the end of stream sentinel or until it is exhausted.
func Parse(reader io.Reader, wordsPerBlock uint32) (*Result, error) {
	s, err := newSession(wordsPerBlock)
	if err != nil {
		return nil, err
	}

	// lines are unbounded in length
	buf := bufio.NewReader(reader)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, newParseError(ErrReadInput, s.lineNum+1, "%s", err.Error())
		}
		if line != "" {
			more, perr := s.processLine(line)
			if perr != nil {
				return nil, perr
			}
			if !more {
				return s.finish(), nil
			}
		}
		if err != nil {
			return s.finish(), nil
		}
	}
}

// ParseLines parses a hex dump that has already been split into lines.
func ParseLines(lines []string, wordsPerBlock uint32) (*Result, error) {
	return ParseSeq(slices.Values(lines), wordsPerBlock)
}

// ParseSeq parses a lazily produced sequence of lines. The sequence is not
// advanced past the end of stream sentinel.
func ParseSeq(lines iter.Seq[string], wordsPerBlock uint32) (*Result, error) {
	s, err := newSession(wordsPerBlock)
	if err != nil {
		return nil, err
	}

	for line := range lines {
		more, err := s.processLine(line)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return s.finish(), nil
}
