// Package bintool holds the whole-array byte operations behind the bx
// command: pattern lookup, slicing, replacement, patching, statistics and
// hex conversion. Nothing here keeps state between calls.
package bintool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"hx/internal/search"
)

var (
	ErrOddHex = errors.New("hex string must have even length")
	ErrRange  = errors.New("invalid range")
	ErrPatch  = errors.New("invalid patch")
)

// ParseHex keeps only the hex digits of s, after dropping 0x prefixes, and
// decodes them. Separators of any kind are therefore allowed.
func ParseHex(s string) ([]byte, error) {
	var digits strings.Builder
	for _, tok := range strings.Fields(strings.NewReplacer(",", " ", "0x", " ", "0X", " ").Replace(s)) {
		for i := 0; i < len(tok); i++ {
			if isHexDigit(tok[i]) {
				digits.WriteByte(tok[i])
			}
		}
	}
	clean := digits.String()
	if len(clean)%2 != 0 {
		return nil, ErrOddHex
	}

	out := make([]byte, len(clean)/2)
	for i := range out {
		v, err := strconv.ParseUint(clean[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex: %w", err)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// ParseOffset reads 0x-prefixed hex or decimal.
func ParseOffset(s string) (int, error) {
	var (
		v   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 63)
	} else {
		v, err = strconv.ParseUint(s, 10, 63)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return int(v), nil
}

// ParseRange reads "start:end" where either side may be empty. The end is
// exclusive and clamped to size.
func ParseRange(s string, size int) (start, end int, err error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(hi, ":") {
		return 0, 0, fmt.Errorf("%w: %q must be start:end", ErrRange, s)
	}

	end = size
	if lo != "" {
		if start, err = ParseOffset(lo); err != nil {
			return 0, 0, err
		}
	}
	if hi != "" {
		if end, err = ParseOffset(hi); err != nil {
			return 0, 0, err
		}
	}
	return start, min(end, size), nil
}

// Slice returns data[start:end] for a range string.
func Slice(data []byte, rng string) ([]byte, int, error) {
	start, end, err := ParseRange(rng, len(data))
	if err != nil {
		return nil, 0, err
	}
	if start >= len(data) {
		return nil, 0, fmt.Errorf("%w: start offset %d exceeds file size %d", ErrRange, start, len(data))
	}
	if end < start {
		return nil, 0, fmt.Errorf("%w: end %d before start %d", ErrRange, end, start)
	}
	return data[start:end], start, nil
}

// Find returns every (possibly overlapping) offset of pattern in data.
func Find(data, pattern []byte) []int {
	return search.FindAll(data, pattern)
}

type OffsetFormat int

const (
	FormatHex OffsetFormat = iota
	FormatDec
	FormatBoth
)

func ParseOffsetFormat(s string) (OffsetFormat, error) {
	switch s {
	case "", "hex":
		return FormatHex, nil
	case "dec":
		return FormatDec, nil
	case "both":
		return FormatBoth, nil
	}
	return FormatHex, fmt.Errorf("unknown format %q (want hex, dec or both)", s)
}

func FormatOffset(off int, f OffsetFormat) string {
	switch f {
	case FormatDec:
		return strconv.Itoa(off)
	case FormatBoth:
		return fmt.Sprintf("0x%08X (%d)", off, off)
	}
	return fmt.Sprintf("0x%08X", off)
}

// Replace substitutes non-overlapping occurrences of from, scanning left to
// right, and reports how many were replaced. Only the first is replaced
// unless all is set. data is not modified.
func Replace(data, from, to []byte, all bool) ([]byte, int) {
	if len(from) == 0 {
		return append([]byte(nil), data...), 0
	}
	limit := 1
	if all {
		limit = -1
	}
	n := bytes.Count(data, from)
	if !all {
		n = min(n, 1)
	}
	return bytes.Replace(data, from, to, limit), n
}

type Patch struct {
	Offset int
	Value  []byte
}

// ParsePatch reads "offset=hexbytes".
func ParsePatch(s string) (Patch, error) {
	off, val, ok := strings.Cut(s, "=")
	if !ok || strings.Contains(val, "=") {
		return Patch{}, fmt.Errorf("%w: %q must be offset=hexvalue", ErrPatch, s)
	}
	offset, err := ParseOffset(off)
	if err != nil {
		return Patch{}, err
	}
	value, err := ParseHex(val)
	if err != nil {
		return Patch{}, fmt.Errorf("%w: %q: %w", ErrPatch, s, err)
	}
	return Patch{Offset: offset, Value: value}, nil
}

// Apply overwrites data in place. Patches never grow the data.
func Apply(data []byte, patches []Patch) error {
	for _, p := range patches {
		if p.Offset > len(data) || len(p.Value) > len(data)-p.Offset {
			return fmt.Errorf("%w: at %d with %d bytes exceeds file size %d",
				ErrPatch, p.Offset, len(p.Value), len(data))
		}
		copy(data[p.Offset:], p.Value)
	}
	return nil
}

type Stats struct {
	Size      int
	Entropy   float64 // Shannon entropy in bits per byte
	Nulls     int
	Printable int // bytes in 0x20..0x7E
}

func Analyze(data []byte) Stats {
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}

	s := Stats{Size: len(data), Nulls: freq[0]}
	for b := 0x20; b <= 0x7E; b++ {
		s.Printable += freq[b]
	}
	if len(data) == 0 {
		return s
	}

	n := float64(len(data))
	for _, f := range freq {
		if f == 0 {
			continue
		}
		p := float64(f) / n
		s.Entropy -= p * math.Log2(p)
	}
	return s
}

func percent(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}

func (s Stats) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Size: %d bytes (0x%X)\n", s.Size, s.Size)
	if s.Size > 0 {
		fmt.Fprintf(&b, "Entropy: %.4f bits/byte\n", s.Entropy)
		fmt.Fprintf(&b, "Null bytes: %d (%.1f%%)\n", s.Nulls, percent(s.Nulls, s.Size))
		fmt.Fprintf(&b, "Printable ASCII: %d (%.1f%%)\n", s.Printable, percent(s.Printable, s.Size))
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// HexDump writes 16 bytes per line with an extra gap after the eighth,
// addressing lines from base.
func HexDump(w io.Writer, data []byte, base int) error {
	for i := 0; i < len(data); i += 16 {
		var b strings.Builder
		fmt.Fprintf(&b, "%08X  ", base+i)
		for j, v := range data[i:min(i+16, len(data))] {
			fmt.Fprintf(&b, "%02X ", v)
			if j == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// Bin2Hex writes width space-terminated hex bytes per line.
func Bin2Hex(w io.Writer, data []byte, width int) error {
	if width <= 0 {
		return fmt.Errorf("width must be positive, got %d", width)
	}
	for i := 0; i < len(data); i += width {
		var b strings.Builder
		for _, v := range data[i:min(i+width, len(data))] {
			fmt.Fprintf(&b, "%02X ", v)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func Hex2Bin(w io.Writer, text string) error {
	data, err := ParseHex(text)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
