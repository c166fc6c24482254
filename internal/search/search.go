// Package search implements substring search over byte slices and the
// wraparound protocol used by "find next" and "find previous".
package search

import "bytes"

// FindForward returns the first occurrence of pattern at or after from.
func FindForward(data, pattern []byte, from int) (int, bool) {
	if len(pattern) == 0 || from < 0 || from+len(pattern) > len(data) {
		return -1, false
	}
	i := bytes.Index(data[from:], pattern)
	if i < 0 {
		return -1, false
	}
	return from + i, true
}

// FindBackward returns the last occurrence lying entirely inside
// data[:before].
func FindBackward(data, pattern []byte, before int) (int, bool) {
	if len(pattern) == 0 || before <= 0 {
		return -1, false
	}
	end := min(before, len(data))
	if end < len(pattern) {
		return -1, false
	}
	i := bytes.LastIndex(data[:end], pattern)
	if i < 0 {
		return -1, false
	}
	return i, true
}

// Next searches forward from cursor+1, wrapping to the start of data. A
// wrapped hit is only accepted if it lies before cursor+1.
func Next(data, pattern []byte, cursor int) (pos int, wrapped, ok bool) {
	start := cursor + 1
	if pos, ok := FindForward(data, pattern, start); ok {
		return pos, false, true
	}
	if pos, ok := FindForward(data, pattern, 0); ok && pos < start {
		return pos, true, true
	}
	return -1, false, false
}

// Prev searches backward from cursor, wrapping to the end of data. A
// wrapped hit is only accepted if it lies strictly after cursor.
func Prev(data, pattern []byte, cursor int) (pos int, wrapped, ok bool) {
	if pos, ok := FindBackward(data, pattern, cursor); ok {
		return pos, false, true
	}
	if pos, ok := FindBackward(data, pattern, len(data)); ok && pos > cursor {
		return pos, true, true
	}
	return -1, false, false
}

// FindAll returns the offsets of every (possibly overlapping) occurrence.
func FindAll(data, pattern []byte) []int {
	var out []int
	for from := 0; ; {
		pos, ok := FindForward(data, pattern, from)
		if !ok {
			return out
		}
		out = append(out, pos)
		from = pos + 1
	}
}

func Count(data, pattern []byte) int {
	return len(FindAll(data, pattern))
}
