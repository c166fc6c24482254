// Package encoding converts characters to bytes in the editor's active
// character encoding and decodes byte windows back to displayable cells.
package encoding

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnencodable = errors.New("character cannot be encoded")

type Encoding int

const (
	UTF8 Encoding = iota
	ShiftJIS
	EUCJP
	UTF16LE
	UTF16BE
	Latin1
)

var names = [...]string{
	UTF8:     "UTF-8",
	ShiftJIS: "Shift_JIS",
	EUCJP:    "EUC-JP",
	UTF16LE:  "UTF-16LE",
	UTF16BE:  "UTF-16BE",
	Latin1:   "ISO-8859-1",
}

func (e Encoding) Name() string {
	if e < 0 || int(e) >= len(names) {
		return "unknown"
	}
	return names[e]
}

func (e Encoding) String() string { return e.Name() }

// Next cycles through the supported encodings.
func (e Encoding) Next() Encoding {
	return Encoding((int(e) + 1) % len(names))
}

// Parse accepts the canonical names case-insensitively plus a few aliases.
func Parse(name string) (Encoding, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	switch key {
	case "utf8":
		return UTF8, nil
	case "shiftjis", "sjis", "cp932":
		return ShiftJIS, nil
	case "eucjp":
		return EUCJP, nil
	case "utf16le", "utf16":
		return UTF16LE, nil
	case "utf16be":
		return UTF16BE, nil
	case "iso88591", "latin1":
		return Latin1, nil
	}
	return UTF8, fmt.Errorf("unknown encoding %q", name)
}

func (e Encoding) codec() xenc.Encoding {
	switch e {
	case ShiftJIS:
		return japanese.ShiftJIS
	case EUCJP:
		return japanese.EUCJP
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case Latin1:
		return charmap.ISO8859_1
	}
	return nil
}

// EncodeRune returns the byte sequence for r in enc.
func EncodeRune(r rune, enc Encoding) ([]byte, error) {
	if enc == UTF8 {
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w: %U in %s", ErrUnencodable, r, enc.Name())
		}
		return utf8.AppendRune(nil, r), nil
	}
	out, err := enc.codec().NewEncoder().Bytes(utf8.AppendRune(nil, r))
	if err != nil || len(out) == 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnencodable, r, enc.Name())
	}
	return out, nil
}

func EncodeString(s string, enc Encoding) ([]byte, error) {
	var out []byte
	for _, r := range s {
		b, err := EncodeRune(r, enc)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
