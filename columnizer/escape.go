package main

import (
	"errors"
	"strconv"
)

var escapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'e':  0x1b,
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// parseCharArg reads a single byte, either literally ("x") or as a
// backslash escape ("\n"). Unknown escapes yield the escaped byte itself; a
// backslash with nothing after it is rejected.
func parseCharArg(text string) (byte, bool) {
	switch {
	case text == `\`:
		return 0, false
	case len(text) == 1:
		return text[0], true
	case len(text) == 2 && text[0] == '\\':
		if c, ok := escapes[text[1]]; ok {
			return c, true
		}
		return text[1], true
	default:
		return 0, false
	}
}

var errExpectedChar = errors.New("expected character")

// charFlag is a flag.Value holding a single byte.
type charFlag byte

func (c *charFlag) Set(s string) error {
	b, ok := parseCharArg(s)
	if !ok {
		return errExpectedChar
	}
	*c = charFlag(b)
	return nil
}

func (c *charFlag) String() string {
	if c == nil {
		return ""
	}
	return strconv.Quote(string([]byte{byte(*c)}))
}
