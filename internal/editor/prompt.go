package editor

import (
	"errors"
	"fmt"
	"strings"

	"hx/internal/buffer"
	"hx/internal/config"
	"hx/internal/encoding"
	"hx/internal/pattern"
)

const helpText = "Commands: goto(g) save(s) quit(q) fill(f) insert(i) width(w) encoding(e) write-config help(?)"

func (c *Controller) handlePrompt(m *Prompting, a Action) {
	switch a.Kind {
	case ActCancel:
		c.mode = Normal{}
		c.status = "Cancelled"
	case ActEnter:
		c.submitPrompt(m)
	default:
		appendInput(&m.Input, a)
	}
}

// submitPrompt leaves the prompt before dispatching, so handlers may open a
// new mode. Handlers that reject their input put m back.
func (c *Controller) submitPrompt(m *Prompting) {
	c.mode = Normal{}
	input := strings.TrimSpace(m.Input)

	switch m.Kind {
	case PromptGoto:
		if !c.gotoAddress(input) {
			c.mode = m
		}
	case PromptOpen:
		path := pattern.ExpandHome(input)
		if path != "" && c.doc.IsModified() {
			c.mode = &Confirming{Pending: PendingOpen, Path: path}
			return
		}
		c.openFile(path)
	case PromptSaveAs:
		c.saveAs(pattern.ExpandHome(input))
	case PromptCommand:
		c.dispatchCommand(input)
	case PromptCommandArg:
		if !c.runCommand(m.Command, input) {
			c.mode = m
		}
	}
}

// gotoAddress moves to the parsed address. It reports false when the input
// should stay in the prompt for correction.
func (c *Controller) gotoAddress(input string) bool {
	if input == "" {
		c.status = "No address"
		return true
	}
	addr, err := pattern.ParseAddress(input)
	if err != nil {
		c.status = "Invalid address: " + input
		return false
	}
	if addr > c.doc.Len() {
		c.status = fmt.Sprintf("Address %X exceeds file size %X", addr, c.doc.Len())
		return false
	}
	c.clearSelection()
	c.moveTo(addr)
	c.status = fmt.Sprintf("Jumped to %08X", addr)
	return true
}

var commandAliases = map[string]string{
	"g": "goto",
	"s": "save",
	"q": "quit",
	"f": "fill",
	"i": "insert",
	"w": "width",
	"e": "encoding",
	"?": "help",
	"h": "help",
}

func (c *Controller) dispatchCommand(input string) {
	name, arg, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)
	if full, ok := commandAliases[name]; ok {
		name = full
	}
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
	case "goto":
		if arg == "" || !c.gotoAddress(arg) {
			c.mode = &Prompting{Kind: PromptGoto, Input: arg}
		}
	case "save":
		c.save()
	case "quit":
		c.requestQuit()
	case "help":
		c.status = helpText
	case "write-config":
		c.writeConfig()
	case "fill":
		if _, _, ok := c.selected(); !ok {
			c.status = "No selection"
			return
		}
		fallthrough
	case "insert", "width", "encoding":
		if arg == "" || !c.runCommand(name, arg) {
			c.mode = &Prompting{Kind: PromptCommandArg, Command: name, Input: arg}
		}
	default:
		c.status = fmt.Sprintf("Unknown command: %s (try 'help')", name)
	}
}

// runCommand executes a command that takes an argument. It reports false when
// the argument could not be parsed.
func (c *Controller) runCommand(name, arg string) bool {
	switch name {
	case "fill":
		return c.fill(arg)
	case "insert":
		return c.insertRun(arg)
	case "width":
		return c.setWidth(arg)
	case "encoding":
		enc, err := encoding.Parse(arg)
		if err != nil {
			c.status = err.Error()
			return false
		}
		c.setEncoding(enc)
		return true
	}
	c.status = "Unknown command: " + name
	return true
}

func (c *Controller) fill(arg string) bool {
	v, err := pattern.ParseByte(arg)
	if err != nil {
		c.status = "Invalid byte value"
		return false
	}
	if c.rejectReadOnly() {
		return true
	}
	start, end, ok := c.selected()
	if !ok {
		c.status = "No selection"
		return true
	}
	for i := start; i <= end; i++ {
		if err := c.doc.Set(i, v); err != nil {
			c.fail("Fill failed", err)
			return true
		}
	}
	c.clearSelection()
	c.status = fmt.Sprintf("Filled %d bytes with %02X", end-start+1, v)
	return true
}

func (c *Controller) insertRun(arg string) bool {
	fields := strings.Fields(arg)
	if len(fields) < 1 || len(fields) > 2 {
		c.status = "Usage: insert <count> [byte]"
		return false
	}
	count, err := pattern.ParseCount(fields[0])
	if err != nil {
		c.status = "Invalid count"
		return false
	}
	if count == 0 {
		c.status = "Count must be > 0"
		return false
	}
	var v byte
	if len(fields) == 2 {
		if v, err = pattern.ParseByte(fields[1]); err != nil {
			c.status = "Invalid byte value"
			return false
		}
	}
	if c.rejectReadOnly() {
		return true
	}
	for i := 0; i < count; i++ {
		if err := c.doc.Insert(c.cursor+i, v); err != nil {
			c.fail("Insert failed", err)
			return true
		}
	}
	c.status = fmt.Sprintf("Inserted %d bytes of %02X", count, v)
	return true
}

func (c *Controller) setWidth(arg string) bool {
	n, err := pattern.ParseCount(arg)
	if err != nil || n < config.MinBytesPerRow || n > config.MaxBytesPerRow {
		c.status = fmt.Sprintf("Width must be %d-%d", config.MinBytesPerRow, config.MaxBytesPerRow)
		return false
	}
	c.bytesPerRow = n
	if c.cfg != nil {
		c.cfg.Editor.BytesPerRow = n
	}
	c.ensureVisible()
	c.status = fmt.Sprintf("Bytes per row: %d", n)
	return true
}

func (c *Controller) writeConfig() {
	if c.cfg == nil {
		c.status = "No configuration loaded"
		return
	}
	c.cfg.Editor.BytesPerRow = c.bytesPerRow
	c.cfg.Editor.Encoding = c.enc.Name()
	c.cfg.Editor.InsertMode = c.edit == Insert
	c.cfg.Editor.TextMode = !c.hexMode
	if err := c.cfg.Save(); err != nil {
		c.fail("Write config failed", err)
		return
	}
	c.status = "Wrote " + config.ConfigPath()
}

func (c *Controller) handleConfirm(m *Confirming, a Action) {
	if a.Kind == ActCancel {
		c.mode = Normal{}
		c.status = "Cancelled"
		return
	}
	if a.Kind != ActChar {
		return
	}

	switch pattern.NormalizeFullwidth(a.Char) {
	case 'y', 'Y':
		c.mode = Normal{}
		if err := c.doc.Save(); err != nil {
			if errors.Is(err, buffer.ErrNoPath) {
				c.status = "Save failed: no file name (use save-as)"
				return
			}
			c.fail("Save failed", err)
			return
		}
		c.perform(m)
	case 'n', 'N':
		c.mode = Normal{}
		c.perform(m)
	case 'c', 'C':
		c.mode = Normal{}
		c.status = "Cancelled"
	}
}

func (c *Controller) perform(m *Confirming) {
	switch m.Pending {
	case PendingQuit:
		c.quit = true
	case PendingOpen:
		c.openFile(m.Path)
	case PendingKill:
		c.killBuffer()
	}
}
