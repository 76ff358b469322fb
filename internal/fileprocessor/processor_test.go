package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/titxtblocks/internal/options"
	"github.com/retroenv/titxtblocks/internal/titxt"
)

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "firmware.txt")
	err := os.WriteFile(input, []byte("@8000\n01 02 03 04\n05 06\nq\n"), 0600)
	assert.NoError(t, err)

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "firmware.lst")},
		Flags:      options.Flags{WordsPerBlock: 1, Verify: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Equal(t, "00008000: 04030201\n00008004: 00000605\n", string(data))

	opts.Input = filepath.Join(dir, "missing.txt")
	assert.Error(t, ProcessFile(context.Background(), logger, opts))
}

func TestProcessFileKeepsOutputOnParseError(t *testing.T) {
	logger := log.NewNop()
	dir := t.TempDir()

	input := filepath.Join(dir, "fw.txt")
	assert.NoError(t, os.WriteFile(input, []byte("@0\n01 02 03 04\n@\n"), 0600))
	output := filepath.Join(dir, "fw.lst")
	assert.NoError(t, os.WriteFile(output, []byte("previous good output\n"), 0600))

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{WordsPerBlock: 1},
	}
	err := ProcessFile(context.Background(), logger, opts)
	assert.ErrorIs(t, err, titxt.ErrMalformedAddressDirective)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "previous good output\n", string(data))
}

func TestProcessFileRefusesToOverwriteInput(t *testing.T) {
	logger := log.NewNop()
	dir := t.TempDir()

	input := filepath.Join(dir, "fw.lst")
	dump := "@0\n01 02 03 04\n"
	assert.NoError(t, os.WriteFile(input, []byte(dump), 0600))

	for _, output := range []string{input, filepath.Join(dir, ".", "fw.lst")} {
		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: output},
			Flags:      options.Flags{WordsPerBlock: 1},
		}
		assert.ErrorContains(t, ProcessFile(context.Background(), logger, opts), "would overwrite the input file")
	}

	data, err := os.ReadFile(input)
	assert.NoError(t, err)
	assert.Equal(t, dump, string(data))
}

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error {
	return errors.New("disk full")
}

func TestCloseWriter(t *testing.T) {
	assert.ErrorContains(t, closeWriter(&failingCloser{}), "disk full")
	assert.NoError(t, closeWriter(&bytes.Buffer{}))
	assert.NoError(t, closeWriter(os.Stdout))

	file, err := os.Create(filepath.Join(t.TempDir(), "out.bin"))
	assert.NoError(t, err)
	assert.NoError(t, closeWriter(file))
	assert.Error(t, closeWriter(file))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.hex"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.txt")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = options.Program{Parameters: options.Parameters{Input: "single.txt"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.txt"}, files)

	opts = options.Program{Parameters: options.Parameters{Batch: "[invalid"}}
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		name   string
		format string
		zstd   bool
		input  string
		want   string
	}{
		{name: "default listing", input: "fw/app.txt", want: "fw/app.lst"},
		{name: "intel hex", format: "ihex", input: "app.txt", want: "app.hex"},
		{name: "compressed binary", format: "bin", zstd: true, input: "app.txt", want: "app.bin.zst"},
		{name: "no extension", format: "blocks", input: "app", want: "app.blk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{Flags: options.Flags{Format: tt.format, Zstd: tt.zstd}}
			assert.Equal(t, tt.want, GenerateOutputFilename(opts, tt.input))
		})
	}
}
