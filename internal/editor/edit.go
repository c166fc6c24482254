package editor

import (
	"fmt"

	"hx/internal/clipboard"
	"hx/internal/encoding"
	"hx/internal/pattern"
	"hx/internal/view"
)

func (c *Controller) cursorUp() {
	if c.cursor >= c.bytesPerRow {
		c.cursor -= c.bytesPerRow
		c.ensureVisible()
	}
}

func (c *Controller) cursorDown() {
	if next := c.cursor + c.bytesPerRow; next < c.doc.Len() {
		c.cursor = next
		c.ensureVisible()
	}
}

func (c *Controller) cursorLeft() {
	if c.cursor > 0 {
		c.cursor--
		c.ensureVisible()
	}
}

// cursorRight may step onto the end-of-file position.
func (c *Controller) cursorRight() {
	if c.cursor < c.doc.Len() {
		c.cursor++
		c.ensureVisible()
	}
}

func (c *Controller) pageUp() {
	page := c.visibleRows * c.bytesPerRow
	c.cursor = max(c.cursor-page, 0)
	c.offset = max(c.offset-page, 0)
	c.ensureVisible()
}

func (c *Controller) pageDown() {
	page := c.visibleRows * c.bytesPerRow
	c.cursor = min(c.cursor+page, c.doc.Len())
	lastTop := max(c.doc.Len()/c.bytesPerRow-c.visibleRows+1, 0) * c.bytesPerRow
	c.offset = min(c.offset+page, lastTop)
	c.ensureVisible()
}

func (c *Controller) ensureVisible() {
	cursorRow := c.cursor / c.bytesPerRow
	topRow := c.offset / c.bytesPerRow

	switch {
	case cursorRow < topRow:
		c.offset = cursorRow * c.bytesPerRow
	case cursorRow >= topRow+c.visibleRows:
		c.offset = (cursorRow - c.visibleRows + 1) * c.bytesPerRow
	default:
		c.offset = topRow * c.bytesPerRow
	}
}

func (c *Controller) moveTo(pos int) {
	c.cursor = max(min(pos, c.doc.Len()), 0)
	c.ensureVisible()
}

func (c *Controller) startSelection() {
	c.anchor = c.cursor
	c.hasAnchor = true
	c.selection = &view.Range{Start: c.cursor, End: c.cursor}
	c.status = "Mark set"
}

func (c *Controller) clearSelection() {
	c.hasAnchor = false
	c.selection = nil
}

func (c *Controller) selectAll() {
	if c.doc.Len() == 0 {
		c.status = "Buffer is empty"
		return
	}
	c.anchor = 0
	c.hasAnchor = true
	c.moveTo(c.doc.Len() - 1)
	c.updateSelection()
}

func (c *Controller) updateSelection() {
	if !c.hasAnchor {
		return
	}
	c.selection = &view.Range{Start: min(c.anchor, c.cursor), End: max(c.anchor, c.cursor)}
}

func (c *Controller) selectMove(move func()) {
	if !c.hasAnchor {
		c.anchor = c.cursor
		c.hasAnchor = true
	}
	move()
	c.updateSelection()
}

// selected returns the selection clipped to existing bytes. A selection can
// reach the end-of-file position, which holds no byte.
func (c *Controller) selected() (start, end int, ok bool) {
	if c.selection == nil {
		return 0, 0, false
	}
	start, end = c.selection.Start, min(c.selection.End, c.doc.Len()-1)
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

func (c *Controller) inputHex(r rune) {
	d, ok := pattern.NormalizeHexDigit(r)
	if !ok {
		return
	}
	if c.rejectReadOnly() {
		c.entry = hexEntry{}
		return
	}
	digit := hexValue(d)

	if c.entry.pending {
		value := c.entry.high<<4 | digit
		if err := c.doc.Set(c.cursor, value); err != nil {
			c.fail("Edit failed", err)
		}
		c.entry = hexEntry{}
		c.cursorRight()
		return
	}

	var err error
	switch c.edit {
	case Overwrite:
		if old, ok := c.doc.Get(c.cursor); ok {
			err = c.doc.Set(c.cursor, digit<<4|old&0x0F)
		} else {
			err = c.doc.Insert(c.cursor, digit<<4)
		}
	case Insert:
		err = c.doc.Insert(c.cursor, digit<<4)
	}
	if err != nil {
		c.fail("Edit failed", err)
		return
	}
	c.entry = hexEntry{pending: true, high: digit}
}

func hexValue(d rune) byte {
	if d >= 'A' {
		return byte(d-'A') + 10
	}
	return byte(d - '0')
}

func (c *Controller) inputText(r rune) {
	if c.rejectReadOnly() {
		return
	}
	b, err := encoding.EncodeRune(r, c.enc)
	if err != nil {
		c.status = fmt.Sprintf("Cannot encode '%c' in %s", r, c.enc.Name())
		return
	}
	c.writeBytes(b)
	for range b {
		c.cursorRight()
	}
}

// writeBytes stores b at the cursor per the edit mode. Overwrite extends the
// buffer when it runs past the end.
func (c *Controller) writeBytes(b []byte) {
	for i, v := range b {
		pos := c.cursor + i
		var err error
		if c.edit == Overwrite && pos < c.doc.Len() {
			err = c.doc.Set(pos, v)
		} else {
			err = c.doc.Insert(pos, v)
		}
		if err != nil {
			c.fail("Edit failed", err)
			return
		}
	}
}

// deleteRange removes [start, end] from the highest offset down.
func (c *Controller) deleteRange(start, end int) {
	for i := end; i >= start; i-- {
		if _, err := c.doc.Delete(i); err != nil {
			c.fail("Delete failed", err)
			return
		}
	}
}

func (c *Controller) deleteAt(backspace bool) {
	if c.rejectReadOnly() {
		return
	}
	if start, end, ok := c.selected(); ok {
		c.deleteRange(start, end)
		c.clearSelection()
		c.moveTo(start)
		c.status = fmt.Sprintf("Deleted %d bytes", end-start+1)
		return
	}

	pos := c.cursor
	if backspace {
		if pos == 0 {
			return
		}
		pos--
	}
	if pos >= c.doc.Len() {
		return
	}
	if _, err := c.doc.Delete(pos); err != nil {
		c.fail("Delete failed", err)
		return
	}
	c.moveTo(pos)
}

func (c *Controller) copySelection(format clipboard.HexFormat) {
	start, end, ok := c.selected()
	if !ok {
		if format != clipboard.CArray {
			c.status = "No selection"
			return
		}
		if c.cursor >= c.doc.Len() {
			c.status = "No byte at cursor"
			return
		}
		start, end = c.cursor, c.cursor
	}

	data, _ := c.doc.Range(start, end+1)
	if err := c.clip.Write(clipboard.FormatHex(data, format)); err != nil {
		c.fail("Clipboard error", err)
		return
	}
	c.clearSelection()
	if format == clipboard.CArray {
		c.status = "Copied as HEX"
		return
	}
	c.status = fmt.Sprintf("Copied %d bytes", end-start+1)
}

func (c *Controller) cut() {
	if c.rejectReadOnly() {
		return
	}
	start, end, ok := c.selected()
	if !ok {
		c.status = "No selection"
		return
	}
	data, _ := c.doc.Range(start, end+1)
	if err := c.clip.Write(clipboard.FormatHex(data, clipboard.Spaced)); err != nil {
		c.fail("Clipboard error", err)
		return
	}
	c.deleteRange(start, end)
	c.clearSelection()
	c.moveTo(start)
	c.status = fmt.Sprintf("Cut %d bytes", end-start+1)
}

// paste writes text resolved through the hex-or-literal rule. An empty text
// reads the clipboard instead.
func (c *Controller) paste(text string) {
	if c.rejectReadOnly() {
		return
	}
	if text == "" {
		var err error
		if text, err = c.clip.Read(); err != nil {
			c.status = "Clipboard empty or unavailable"
			return
		}
	}

	b, err := pattern.ToBytes(text, c.enc)
	if err != nil {
		c.status = fmt.Sprintf("Cannot encode paste in %s", c.enc.Name())
		return
	}
	if len(b) == 0 {
		return
	}

	if start, end, ok := c.selected(); ok {
		c.deleteRange(start, end)
		c.cursor = start
	}
	c.clearSelection()

	c.writeBytes(b)
	c.moveTo(c.cursor + len(b))
	c.status = fmt.Sprintf("Pasted %d bytes", len(b))
}
