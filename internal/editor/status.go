package editor

import (
	"fmt"

	"hx/internal/inspect"
)

// StatusLine is the one-line summary shown under the hex view: the active
// prompt, else the last message, else the selection's numeric reading, else
// the cursor position and modes.
func (c *Controller) StatusLine() string {
	if p := c.mode.Prompt(); p != "" {
		return p
	}

	name := c.doc.Filename()
	if name == "" {
		name = "[New]"
	}
	if c.doc.IsModified() {
		name += "[+]"
	}
	if c.doc.ReadOnly() {
		name += "[RO]"
	}

	if c.status != "" {
		return fmt.Sprintf(" %s | %s", name, c.status)
	}
	if start, end, ok := c.selected(); ok {
		data, _ := c.doc.Range(start, end+1)
		return fmt.Sprintf(" %s | %s", name, inspect.Describe(data))
	}

	mode := "HEX"
	if !c.hexMode {
		mode = "TXT"
	}
	return fmt.Sprintf(" %s | %08X/%08X | %s %s | %s",
		name, c.cursor, c.doc.Len(), mode, c.edit, c.enc.Name())
}
