package titxt

import (
	"errors"
	"fmt"
)

// Error kinds returned by the parser, match them with errors.Is.
var (
	ErrInvalidConfiguration      = errors.New("invalid configuration")
	ErrMalformedAddressDirective = errors.New("malformed address directive")
	ErrUnparsableAddressValue    = errors.New("unparsable address value")
	ErrReadInput                 = errors.New("reading input")
)

// ParseError describes a fatal parse failure.
type ParseError struct {
	Kind    error  // one of the Err* kinds
	Line    int    // 1-based input line number, 0 if not line related
	Message string // details
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s at line %d", e.Kind, e.Message, e.Line)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(kind error, line int, format string, args ...any) error {
	return &ParseError{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
