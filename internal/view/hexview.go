// Package view projects a byte slice onto fixed-width hex dump rows.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hx/internal/config"
	"hx/internal/encoding"
)

type Mode int

const (
	HexMode Mode = iota
	TextMode
)

// Range is an inclusive byte range.
type Range struct {
	Start, End int
}

func (r *Range) contains(i int) bool {
	return r != nil && i >= r.Start && i <= r.End
}

// lookahead covers the longest character any supported encoding produces.
const lookahead = 4

const addressWidth = 8

type HexView struct {
	data        []byte
	offset      int
	cursor      int
	selection   *Range
	bytesPerRow int
	rows        int
	enc         encoding.Encoding
	mode        Mode
	insert      bool
	styles      *config.Styles
}

func New(data []byte) *HexView {
	return &HexView{
		data:        data,
		bytesPerRow: 16,
		rows:        1,
		styles:      config.PlainStyles(),
	}
}

func (v *HexView) Offset(offset int) *HexView              { v.offset = offset; return v }
func (v *HexView) Cursor(cursor int) *HexView              { v.cursor = cursor; return v }
func (v *HexView) Selection(sel *Range) *HexView           { v.selection = sel; return v }
func (v *HexView) Rows(rows int) *HexView                  { v.rows = rows; return v }
func (v *HexView) Encoding(enc encoding.Encoding) *HexView { v.enc = enc; return v }
func (v *HexView) Mode(mode Mode) *HexView                 { v.mode = mode; return v }
func (v *HexView) Insert(insert bool) *HexView             { v.insert = insert; return v }

func (v *HexView) BytesPerRow(n int) *HexView {
	if n > 0 {
		v.bytesPerRow = n
	}
	return v
}

func (v *HexView) Styles(s *config.Styles) *HexView {
	if s != nil {
		v.styles = s
	}
	return v
}

// Render returns the header followed by up to Rows data rows.
func (v *HexView) Render() string {
	return strings.Join(v.Lines(), "\n")
}

func (v *HexView) Lines() []string {
	lines := []string{v.styles.Header.Render(v.header())}
	for row := 0; row < v.rows; row++ {
		start := v.offset + row*v.bytesPerRow
		if start > len(v.data) || start == len(v.data) && v.cursor != len(v.data) {
			break
		}
		lines = append(lines, v.renderRow(start))
	}
	return lines
}

func (v *HexView) header() string {
	cols := make([]string, v.bytesPerRow)
	for i := range cols {
		cols[i] = fmt.Sprintf("%02X", i%256)
	}
	return fmt.Sprintf("%-*s  %s  %s", addressWidth, "Offset", strings.Join(cols, " "), "Text")
}

func (v *HexView) cursorStyle() lipgloss.Style {
	if v.insert {
		return v.styles.CursorInsert
	}
	return v.styles.Cursor
}

func (v *HexView) renderRow(start int) string {
	end := min(start+v.bytesPerRow, len(v.data))
	eof := len(v.data)

	var b strings.Builder
	b.WriteString(v.styles.Address.Render(fmt.Sprintf("%08X", start)))
	b.WriteString("  ")

	for i := start; i < start+v.bytesPerRow; i++ {
		if i > start {
			b.WriteByte(' ')
		}
		switch {
		case i < end:
			style := v.styles.Normal
			switch {
			case i == v.cursor && v.mode == HexMode:
				style = v.cursorStyle()
			case v.selection.contains(i):
				style = v.styles.Selection
			case v.data[i] == 0:
				style = v.styles.Zero
			}
			b.WriteString(style.Render(fmt.Sprintf("%02X", v.data[i])))
		case i == eof && i == v.cursor && v.mode == HexMode:
			b.WriteString(v.cursorStyle().Render("__"))
		default:
			b.WriteString("  ")
		}
	}
	b.WriteString("  ")
	b.WriteString(v.renderText(start, end))
	return b.String()
}

func (v *HexView) renderText(start, end int) string {
	eof := len(v.data)

	var b strings.Builder
	skip := min(ContinuationBytes(v.data, start, v.enc), v.bytesPerRow)
	b.WriteString(strings.Repeat(" ", skip))

	first := start + skip
	var cells []encoding.Cell
	if first < end {
		cells = encoding.Decode(v.data[first:min(end+lookahead, eof)], v.enc)
	}

	for idx := skip; idx < v.bytesPerRow; {
		abs := start + idx
		if abs >= end {
			if abs == eof && abs == v.cursor && v.mode == TextMode {
				b.WriteString(v.cursorStyle().Render("_"))
			} else {
				b.WriteByte(' ')
			}
			idx++
			continue
		}

		c := cells[abs-first]
		if c.Continuation() {
			b.WriteByte(' ')
			idx++
			continue
		}

		style := v.styles.Normal
		switch {
		case v.mode == TextMode && v.cursor >= abs && v.cursor < abs+c.Len:
			style = v.cursorStyle()
		case v.selection.contains(abs):
			style = v.styles.Selection
		}
		b.WriteString(style.Render(c.Text))

		inRow := min(c.Len, v.bytesPerRow-idx)
		advance := c.Width
		if c.Len <= inRow {
			advance = min(c.Width, c.Len)
		}
		if inRow > advance {
			b.WriteString(strings.Repeat(" ", inRow-advance))
		}
		idx += inRow
	}
	return b.String()
}

// ContinuationBytes reports how many bytes at the start of the row beginning
// at rowStart belong to a character that started on an earlier row.
func ContinuationBytes(data []byte, rowStart int, enc encoding.Encoding) int {
	if rowStart <= 0 || rowStart >= len(data) {
		return 0
	}

	pos := max(rowStart-lookahead, 0)
	if enc == encoding.UTF16LE || enc == encoding.UTF16BE {
		pos &^= 1
	}
	window := data[:min(rowStart+lookahead, len(data))]
	for pos < rowStart {
		c := encoding.DecodeAt(window[pos:], enc)
		if c.Len == 0 {
			return 0
		}
		pos += c.Len
	}
	return pos - rowStart
}
