// Package options contains the program options.
package options

// Format is an output format of the converted blocks.
type Format string

// Supported output formats.
const (
	Listing  Format = "listing" // text listing of blocks and words
	Binary   Format = "bin"     // flat binary image
	IntelHex Format = "ihex"    // Intel HEX file
	Blocks   Format = "blocks"  // block stream container
)

// DefaultWordsPerBlock is the block size used if none is given.
const DefaultWordsPerBlock = 64

// Formats lists all supported output formats.
var Formats = []Format{Listing, Binary, IntelHex, Blocks}

// FormatFromString returns the format matching the given name.
func FormatFromString(s string) (Format, bool) {
	for _, format := range Formats {
		if string(format) == s {
			return format, true
		}
	}
	return "", false
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input TI-TXT file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.txt)"`
}

// Flags contains behavior options.
type Flags struct {
	Format        string `flag:"f" usage:"output format: listing, bin, ihex, blocks (default: detect from output file)"`
	WordsPerBlock uint   `flag:"w" usage:"32-bit words per block" default:"64"`
	Fill          uint   `flag:"fill" usage:"byte value to fill gaps of binary images" default:"255"`
	Zstd          bool   `flag:"zstd" usage:"compress bin and blocks output with zstd"`
	Verify        bool   `flag:"verify" usage:"verify the written output by reading it back"`
	Debug         bool   `flag:"debug" usage:"enable debug logging"`
	Quiet         bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the converter.
type Program struct {
	Parameters
	Flags
}

// Writer defines options to control the output writers.
type Writer struct {
	Fill byte // gap fill value of binary images
	Zstd bool // compress the output stream
}

// NewWriter returns the writer options for the program options.
func NewWriter(opts Program) Writer {
	return Writer{
		Fill: byte(opts.Fill),
		Zstd: opts.Zstd,
	}
}
