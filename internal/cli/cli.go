// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/retroenv/titxtblocks/internal/options"
)

const maxByteValue = 0xFF

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: titxtblocks [options] <TI-TXT file to convert>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to convert, please pass the file to convert as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.WordsPerBlock == 0 || opts.WordsPerBlock > math.MaxUint32 {
		return fmt.Errorf("invalid words per block: %d. Value has to be in the range 1-%d",
			opts.WordsPerBlock, uint32(math.MaxUint32))
	}
	if opts.Fill > maxByteValue {
		return fmt.Errorf("invalid fill byte: %d. Value has to be in the range 0-255", opts.Fill)
	}

	opts.Format = strings.ToLower(opts.Format)
	switch opts.Format {
	case "":
		return nil
	case "hex":
		opts.Format = string(options.IntelHex)
		return nil
	case "binary":
		opts.Format = string(options.Binary)
		return nil
	}

	if _, ok := options.FormatFromString(opts.Format); ok {
		return nil
	}

	valid := make([]string, 0, len(options.Formats))
	for _, format := range options.Formats {
		valid = append(valid, string(format))
	}
	return fmt.Errorf("unsupported output format: %s. Valid options: %s",
		opts.Format, strings.Join(valid, ", "))
}

// validateOptionCombinations checks for options that can not be used together.
func validateOptionCombinations(opts options.Program) error {
	if opts.Verify && opts.Output == "" && opts.Batch == "" {
		return errors.New("verify requires an output file, console output can not be verified")
	}

	switch options.Format(opts.Format) {
	case options.Listing, options.IntelHex:
		if opts.Zstd {
			return fmt.Errorf("zstd compression is not supported for the %s output format", opts.Format)
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input TI-TXT file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the output files, for example *.txt")
	flags.StringVar(&opts.Format, "f", "", "output format (listing/bin/ihex/blocks), detected from the output file extension if not given")
	flags.UintVar(&opts.WordsPerBlock, "w", options.DefaultWordsPerBlock, "number of 32-bit words per block")
	flags.UintVar(&opts.Fill, "fill", maxByteValue, "byte value used to fill gaps between blocks of binary images")
	flags.BoolVar(&opts.Zstd, "zstd", false, "compress bin and blocks output using zstd")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the written output file by reading it back and comparing it to the parsed blocks")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
