package titxt

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPackWords(t *testing.T) {
	samples := [][4]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0x01, 0x02, 0x03, 0x04},
		{0xFF, 0x00, 0xFF, 0x00},
		{0xAA, 0xBB, 0xCC, 0xDD},
		{0xFF, 0xFF, 0xFF, 0xFF},
	}

	for _, b := range samples {
		words := packWords(b[:])
		assert.Len(t, words, 1)
		expected := uint32(b[0]) + 256*uint32(b[1]) + 65536*uint32(b[2]) + 16777216*uint32(b[3])
		assert.Equal(t, expected, words[0])
		assert.Equal(t, b[:], unpackWords(words))
	}
}

func TestPackWordsOrder(t *testing.T) {
	words := packWords([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	assert.Equal(t, []uint32{0x04030201, 0x08070605}, words)
}

func TestPackWordsInvalidLength(t *testing.T) {
	defer func() {
		assert.NotNil(t, recover())
	}()
	packWords([]byte{0x01, 0x02, 0x03})
}
