package titxt

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    lineClass
		wantErr error
	}{
		{name: "address directive", line: "@F000", want: lineClass{kind: addressDirective, address: "F000"}},
		{name: "address directive with noise", line: "@ 0x10-00", want: lineClass{kind: addressDirective, address: "01000"}},
		{name: "sentinel", line: "q", want: lineClass{kind: endOfStream}},
		{name: "upper case q is data", line: "Q", want: lineClass{kind: dataLine}},
		{name: "data tokens", line: "31 40 00 03", want: lineClass{kind: dataLine, tokens: []string{"31", "40", "00", "03"}}},
		{name: "lower case tokens", line: "ab cd", want: lineClass{kind: dataLine, tokens: []string{"ab", "cd"}}},
		{name: "adjacent tokens", line: "AABBC", want: lineClass{kind: dataLine, tokens: []string{"AA", "BB"}}},
		{name: "non hex noise", line: "xx 12 ; ZZ 3", want: lineClass{kind: dataLine, tokens: []string{"12"}}},
		{name: "bare directive", line: "@", wantErr: ErrMalformedAddressDirective},
		{name: "directive without hex", line: "@ggg", wantErr: ErrMalformedAddressDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyLine(tt.line, 1)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want.kind, got.kind)
			assert.Equal(t, tt.want.address, got.address)
			assert.Equal(t, len(tt.want.tokens), len(got.tokens))
			for i, token := range tt.want.tokens {
				assert.Equal(t, token, got.tokens[i])
			}
		})
	}
}
