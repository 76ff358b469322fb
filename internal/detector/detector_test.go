package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/options"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		formatOpt  string
		outputFile string
		wantFormat options.Format
	}{
		{
			name:       "explicit format option",
			formatOpt:  "bin",
			outputFile: "firmware.hex",
			wantFormat: options.Binary,
		},
		{
			name:       "detect from .hex extension",
			outputFile: "firmware.hex",
			wantFormat: options.IntelHex,
		},
		{
			name:       "detect from upper case extension",
			outputFile: "FIRMWARE.BIN",
			wantFormat: options.Binary,
		},
		{
			name:       "detect from .blk extension",
			outputFile: "firmware.blk",
			wantFormat: options.Blocks,
		},
		{
			name:       "detect through .zst extension",
			outputFile: "firmware.blk.zst",
			wantFormat: options.Blocks,
		},
		{
			name:       "console output defaults to listing",
			outputFile: "",
			wantFormat: options.Listing,
		},
		{
			name:       "unknown extension defaults to listing",
			outputFile: "firmware.out",
			wantFormat: options.Listing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Output: tt.outputFile},
				Flags:      options.Flags{Format: tt.formatOpt},
			}
			assert.Equal(t, tt.wantFormat, d.Detect(opts))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".hex", Extension(options.IntelHex, false))
	assert.Equal(t, ".bin.zst", Extension(options.Binary, true))
	assert.Equal(t, ".blk", Extension(options.Blocks, false))
	assert.Equal(t, ".lst", Extension(options.Listing, false))
}
