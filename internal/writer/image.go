package writer

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/titxtblocks/internal/titxt"
)

// MaxImageSize limits the size of flat binary images.
const MaxImageSize = 256 << 20

var errEmptyImage = errors.New("no blocks to build an image from")

// Image builds a flat memory image covering all blocks. It returns the base
// address of the image. Gaps between blocks are set to the fill value,
// overlapping blocks overwrite earlier ones.
func Image(blocks []titxt.Block, fill byte) (uint32, []byte, error) {
	if len(blocks) == 0 {
		return 0, nil, errEmptyImage
	}

	base := uint64(blocks[0].Address)
	var end uint64
	for _, block := range blocks {
		base = min(base, uint64(block.Address))
		end = max(end, uint64(block.Address)+uint64(block.Size()))
	}

	size := end - base
	if size > MaxImageSize {
		return 0, nil, fmt.Errorf("image size of %d bytes from address 0x%08X exceeds the limit of %d bytes",
			size, base, MaxImageSize)
	}

	data := make([]byte, size)
	for i := range data {
		data[i] = fill
	}
	for _, block := range blocks {
		copy(data[uint64(block.Address)-base:], block.Bytes())
	}
	return uint32(base), data, nil
}

type binaryWriter struct {
	fill byte
}

// Write outputs a flat binary image starting at the lowest block address.
func (b binaryWriter) Write(w io.Writer, blocks []titxt.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	_, data, err := Image(blocks, b.fill)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	return nil
}
