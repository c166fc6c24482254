package encoding

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Cell is the display form of one byte position. The first byte of a
// character carries the whole character; continuation bytes have Len 0.
type Cell struct {
	Text  string
	Len   int
	Width int
}

func (c Cell) Continuation() bool { return c.Len == 0 }

var placeholder = Cell{Text: ".", Len: 1, Width: 1}

// Decode splits window into characters of enc. The result has one Cell per
// input byte. A character truncated by the end of the window decodes as a
// placeholder, so callers should pass a few bytes of lookahead.
func Decode(window []byte, enc Encoding) []Cell {
	cells := make([]Cell, len(window))
	for i := 0; i < len(window); {
		c := decodeAt(window[i:], enc)
		cells[i] = c
		i += c.Len
	}
	return cells
}

// DecodeAt decodes the single character starting at data[0].
func DecodeAt(data []byte, enc Encoding) Cell {
	if len(data) == 0 {
		return Cell{}
	}
	return decodeAt(data, enc)
}

func decodeAt(data []byte, enc Encoding) Cell {
	n := seqLen(data, enc)
	if n == 0 || n > len(data) {
		return placeholder
	}

	var r rune
	if enc == UTF8 {
		r, _ = utf8.DecodeRune(data[:n])
	} else {
		out, err := enc.codec().NewDecoder().Bytes(data[:n])
		if err != nil {
			return placeholder
		}
		var size int
		r, size = utf8.DecodeRune(out)
		if size != len(out) {
			return placeholder
		}
	}
	if r == utf8.RuneError || unicode.IsControl(r) {
		return Cell{Text: ".", Len: n, Width: 1}
	}

	w := runewidth.RuneWidth(r)
	if w == 0 {
		return Cell{Text: ".", Len: n, Width: 1}
	}
	return Cell{Text: string(r), Len: n, Width: w}
}

// seqLen reports how many bytes the character starting at data[0] occupies,
// or 0 when data[0] cannot start a character.
func seqLen(data []byte, enc Encoding) int {
	b := data[0]
	switch enc {
	case UTF8:
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return 0
		}
		return size
	case ShiftJIS:
		switch {
		case b < 0x80, b >= 0xA1 && b <= 0xDF:
			return 1
		case b >= 0x81 && b <= 0x9F, b >= 0xE0 && b <= 0xFC:
			return 2
		}
		return 0
	case EUCJP:
		switch {
		case b < 0x80:
			return 1
		case b == 0x8E:
			return 2
		case b == 0x8F:
			return 3
		case b >= 0xA1 && b <= 0xFE:
			return 2
		}
		return 0
	case UTF16LE, UTF16BE:
		if len(data) < 2 {
			return 2
		}
		var unit uint16
		if enc == UTF16LE {
			unit = uint16(data[0]) | uint16(data[1])<<8
		} else {
			unit = uint16(data[0])<<8 | uint16(data[1])
		}
		if unit >= 0xD800 && unit <= 0xDBFF {
			return 4
		}
		return 2
	case Latin1:
		return 1
	}
	return 1
}
