package titxt

import (
	"encoding/binary"
	"fmt"
)

// WordSize is the number of bytes in a block word.
const WordSize = 4

// packWords converts a byte slice into little-endian 32-bit words.
// The length of data has to be a multiple of WordSize.
func packWords(data []byte) []uint32 {
	if len(data)%WordSize != 0 {
		panic(fmt.Sprintf("packing %d bytes into words", len(data)))
	}

	words := make([]uint32, len(data)/WordSize)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*WordSize:])
	}
	return words
}

// unpackWords returns the little-endian byte image of the words.
func unpackWords(words []uint32) []byte {
	data := make([]byte, len(words)*WordSize)
	for i, word := range words {
		binary.LittleEndian.PutUint32(data[i*WordSize:], word)
	}
	return data
}
