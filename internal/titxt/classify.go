package titxt

import (
	"regexp"
	"strings"
)

type lineKind int

const (
	dataLine lineKind = iota
	addressDirective
	endOfStream
)

const (
	directivePrefix = '@'
	sentinel        = "q"
)

var byteToken = regexp.MustCompile(`[0-9A-Fa-f]{2}`)

// lineClass is the result of classifying a single trimmed input line.
type lineClass struct {
	kind    lineKind
	address string   // hex digits of an address directive
	tokens  []string // two digit hex tokens of a data line
}

// classifyLine assigns a trimmed, non-empty line to its category.
func classifyLine(line string, lineNum int) (lineClass, error) {
	if line[0] == directivePrefix {
		address := strings.Map(keepHexDigit, line[1:])
		if address == "" {
			return lineClass{}, newParseError(ErrMalformedAddressDirective, lineNum,
				"no hex digits in '%s'", line)
		}
		return lineClass{kind: addressDirective, address: address}, nil
	}

	if line == sentinel {
		return lineClass{kind: endOfStream}, nil
	}

	return lineClass{
		kind:   dataLine,
		tokens: byteToken.FindAllString(line, -1),
	}, nil
}

func keepHexDigit(r rune) rune {
	if isHexDigit(r) {
		return r
	}
	return -1
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
