// Package pattern decides whether user text denotes a hex byte string or
// literal characters, and parses the numeric arguments typed into prompts.
package pattern

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"hx/internal/encoding"
)

var (
	ErrNotHex = errors.New("not a hex byte string")
	ErrParse  = errors.New("parse error")
)

// NormalizeFullwidth maps full-width ASCII forms (U+FF01..U+FF5E) and the
// ideographic space to their half-width counterparts.
func NormalizeFullwidth(r rune) rune {
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return r
	}
	if n := p.Narrow(); n != 0 {
		return n
	}
	return r
}

func narrow(s string) string {
	return strings.Map(NormalizeFullwidth, s)
}

// NormalizeHexDigit returns the upper-case half-width hex digit for r.
func NormalizeHexDigit(r rune) (rune, bool) {
	r = NormalizeFullwidth(r)
	switch {
	case r >= '0' && r <= '9', r >= 'A' && r <= 'F':
		return r, true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 'A', true
	}
	return 0, false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', ',', '{', '}', '\n', '\r', '\t':
		return true
	}
	return false
}

// NormalizeHex strips separators and 0x prefixes, narrows full-width forms
// and upper-cases hex letters. Characters that are not hex digits are kept
// so that LooksLikeHex can reject them.
func NormalizeHex(text string) string {
	var b strings.Builder
	for _, tok := range strings.FieldsFunc(narrow(text), isSeparator) {
		if len(tok) > 2 && (tok[:2] == "0x" || tok[:2] == "0X") {
			tok = tok[2:]
		}
		for _, r := range tok {
			if d, ok := NormalizeHexDigit(r); ok {
				b.WriteRune(d)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func LooksLikeHex(text string) bool {
	n := NormalizeHex(text)
	if n == "" || len(n)%2 != 0 {
		return false
	}
	for i := 0; i < len(n); i++ {
		c := n[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func DecodeHex(text string) ([]byte, error) {
	if !LooksLikeHex(text) {
		return nil, fmt.Errorf("%w: %q", ErrNotHex, text)
	}
	return hex.DecodeString(NormalizeHex(text))
}

// ToBytes resolves text the same way for paste, search and replace: text
// that looks like hex is decoded as hex, anything else is encoded with enc.
// Wrapping the text in double quotes forces the literal reading.
func ToBytes(text string, enc encoding.Encoding) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		return encoding.EncodeString(trimmed[1:len(trimmed)-1], enc)
	}
	if LooksLikeHex(trimmed) {
		return DecodeHex(trimmed)
	}
	return encoding.EncodeString(text, enc)
}
