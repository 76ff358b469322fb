package titxt

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// session holds the state of a single parse call. Every transition
// mutates the parse state and the block output together.
type session struct {
	wordsPerBlock uint32
	bytesPerBlock int

	addressSet bool
	address    uint32
	pending    []byte

	lineNum    int
	terminated bool

	blocks []Block
	stats  Stats
}

func newSession(wordsPerBlock uint32) (*session, error) {
	if wordsPerBlock == 0 {
		return nil, newParseError(ErrInvalidConfiguration, 0, "words per block must be greater than 0")
	}
	bytesPerBlock := uint64(wordsPerBlock) * WordSize
	if bytesPerBlock > 1<<32 {
		return nil, newParseError(ErrInvalidConfiguration, 0,
			"block size of %d words exceeds the address space", wordsPerBlock)
	}

	return &session{
		wordsPerBlock: wordsPerBlock,
		bytesPerBlock: int(bytesPerBlock),
	}, nil
}

// processLine feeds one raw input line into the session.
// It returns false once the end of stream sentinel was read.
func (s *session) processLine(raw string) (bool, error) {
	s.lineNum++
	s.stats.Lines++

	line := strings.TrimSpace(raw)
	if line == "" {
		return true, nil
	}

	class, err := classifyLine(line, s.lineNum)
	if err != nil {
		return false, err
	}

	switch class.kind {
	case addressDirective:
		return true, s.startSection(class.address)

	case endOfStream:
		s.terminated = true
		return false, nil

	default:
		s.appendTokens(class.tokens)
		return true, nil
	}
}

// startSection flushes all complete blocks of the current section and
// begins a new section at the given hex address.
func (s *session) startSection(text string) error {
	if s.addressSet {
		s.drain()
		s.stats.DroppedBytes += len(s.pending)
	}

	address, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return newParseError(ErrUnparsableAddressValue, s.lineNum, "address '%s' does not fit into 32 bits", text)
	}

	s.reset()
	s.address = uint32(address)
	s.addressSet = true
	s.stats.Sections++
	return nil
}

func (s *session) appendTokens(tokens []string) {
	if len(tokens) == 0 {
		return
	}

	data := make([]byte, len(tokens))
	for i, token := range tokens {
		// tokens are matched as two hex digits and can not fail to decode
		_, _ = hex.Decode(data[i:i+1], []byte(token))
	}
	s.stats.DataBytes += len(data)

	if !s.addressSet {
		// there is no address to assign these bytes to
		s.stats.Discarded += len(data)
		return
	}

	s.append(data)
	s.drain()
}

func (s *session) append(data []byte) {
	s.pending = append(s.pending, data...)
}

func (s *session) reset() {
	s.pending = s.pending[:0]
}

// drain slices all complete blocks from the pending bytes.
func (s *session) drain() {
	if !s.addressSet {
		return
	}

	offset := 0
	for len(s.pending)-offset >= s.bytesPerBlock {
		data := s.pending[offset : offset+s.bytesPerBlock]
		offset += s.bytesPerBlock

		s.blocks = append(s.blocks, Block{
			Address:   s.address,
			WordCount: s.wordsPerBlock,
			Words:     packWords(data),
		})

		next := s.address + uint32(s.bytesPerBlock)
		if next <= s.address {
			s.stats.Wrapped++
		}
		s.address = next
	}

	if offset > 0 {
		remaining := copy(s.pending, s.pending[offset:])
		s.pending = s.pending[:remaining]
	}
}

// finish pads a trailing partial block with zero bytes and emits it.
func (s *session) finish() *Result {
	if s.addressSet && len(s.pending) > 0 {
		remainder := len(s.pending) % s.bytesPerBlock
		if remainder != 0 {
			padding := s.bytesPerBlock - remainder
			s.pending = append(s.pending, make([]byte, padding)...)
			s.stats.PaddingBytes += padding
		}
		s.drain()
	}

	s.stats.Terminated = s.terminated
	s.stats.Blocks = len(s.blocks)

	return &Result{
		Blocks: s.blocks,
		Stats:  s.stats,
	}
}
