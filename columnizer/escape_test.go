package main

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseCharArg(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		input  string
		want   byte
		wantOK bool
	}{
		{name: "single character", input: "x", want: 'x', wantOK: true},
		{name: "space", input: " ", want: ' ', wantOK: true},
		{name: "newline escape", input: `\n`, want: '\n', wantOK: true},
		{name: "tab escape", input: `\t`, want: '\t', wantOK: true},
		{name: "alert escape", input: `\a`, want: '\a', wantOK: true},
		{name: "backspace escape", input: `\b`, want: '\b', wantOK: true},
		{name: "escape escape", input: `\e`, want: 0x1b, wantOK: true},
		{name: "form feed escape", input: `\f`, want: '\f', wantOK: true},
		{name: "carriage return escape", input: `\r`, want: '\r', wantOK: true},
		{name: "vertical tab escape", input: `\v`, want: '\v', wantOK: true},
		{name: "backslash escape", input: `\\`, want: '\\', wantOK: true},
		{name: "single quote escape", input: `\'`, want: '\'', wantOK: true},
		{name: "double quote escape", input: `\"`, want: '"', wantOK: true},
		{name: "question mark escape", input: `\?`, want: '?', wantOK: true},
		{name: "unknown escape is literal", input: `\z`, want: 'z', wantOK: true},
		{name: "escaped digit is literal", input: `\0`, want: '0', wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "dangling escape", input: `\`, wantOK: false},
		{name: "two characters", input: "ab", wantOK: false},
		{name: "escape too long", input: `\nn`, wantOK: false},
		{name: "multibyte rune", input: "é", wantOK: false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parseCharArg(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCharFlag(t *testing.T) {
	t.Parallel()

	c := charFlag(' ')
	assert.Equal(t, `" "`, c.String())

	assert.NilError(t, c.Set(`\t`))
	assert.Equal(t, charFlag('\t'), c)
	assert.Equal(t, `"\t"`, c.String())

	err := c.Set("tab")
	assert.ErrorIs(t, err, errExpectedChar)
	assert.Equal(t, charFlag('\t'), c)
}
