package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hx/internal/encoding"
)

func TestRenderASCII(t *testing.T) {
	lines := New([]byte("ABC")).BytesPerRow(4).Rows(2).Lines()

	require.Len(t, lines, 2)
	assert.Equal(t, "Offset    00 01 02 03  Text", lines[0])
	assert.Equal(t, "00000000  41 42 43     ABC ", lines[1])
}

func TestRenderCursorAtEOF(t *testing.T) {
	lines := New([]byte("AB")).BytesPerRow(2).Rows(3).Cursor(2).Lines()

	require.Len(t, lines, 3)
	assert.Equal(t, "00000000  41 42  AB", lines[1])
	assert.Equal(t, "00000002  __       ", lines[2])
}

func TestRenderEmptyBuffer(t *testing.T) {
	lines := New(nil).BytesPerRow(2).Rows(4).Lines()

	require.Len(t, lines, 2)
	assert.Equal(t, "00000000  __       ", lines[1])
}

func TestRenderNoEOFRowWithoutCursor(t *testing.T) {
	lines := New([]byte("AB")).BytesPerRow(2).Rows(3).Lines()
	assert.Len(t, lines, 2)
}

func TestRenderControlBytes(t *testing.T) {
	lines := New([]byte{0x00, 0x0A, 0x7F}).BytesPerRow(3).Rows(1).Lines()
	assert.Equal(t, "00000000  00 0A 7F  ...", lines[1])
}

func TestRenderCharacterStraddlingRows(t *testing.T) {
	// 'a', U+3042 (3 bytes, double width), 'b'
	data := []byte{0x61, 0xE3, 0x81, 0x82, 0x62}
	lines := New(data).BytesPerRow(2).Rows(3).Lines()

	require.Len(t, lines, 4)
	assert.Equal(t, "00000000  61 E3  aあ", lines[1])
	assert.Equal(t, "00000002  81 82    ", lines[2])
	assert.Equal(t, "00000004  62     b ", lines[3])
}

func TestRenderOffset(t *testing.T) {
	data := []byte("0123456789")
	lines := New(data).BytesPerRow(4).Rows(1).Offset(4).Lines()

	require.Len(t, lines, 2)
	assert.Equal(t, "00000004  34 35 36 37  4567", lines[1])
}

func TestContinuationBytes(t *testing.T) {
	utf8 := []byte{0x61, 0xE3, 0x81, 0x82, 0x62}
	assert.Equal(t, 0, ContinuationBytes(utf8, 0, encoding.UTF8))
	assert.Equal(t, 1, ContinuationBytes(utf8, 3, encoding.UTF8))
	assert.Equal(t, 2, ContinuationBytes(utf8, 2, encoding.UTF8))
	assert.Equal(t, 0, ContinuationBytes(utf8, 4, encoding.UTF8))

	sjis := []byte{0x83, 0x41, 0x83, 0x43}
	assert.Equal(t, 1, ContinuationBytes(sjis, 3, encoding.ShiftJIS))
	assert.Equal(t, 0, ContinuationBytes(sjis, 2, encoding.ShiftJIS))

	utf16 := []byte{0x41, 0x00, 0x42, 0x00}
	assert.Equal(t, 1, ContinuationBytes(utf16, 3, encoding.UTF16LE))
	assert.Equal(t, 0, ContinuationBytes(utf16, 2, encoding.UTF16LE))
}
