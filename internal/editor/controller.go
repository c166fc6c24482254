package editor

import (
	"errors"
	"fmt"
	"io"
	"log"

	"hx/internal/buffer"
	"hx/internal/clipboard"
	"hx/internal/config"
	"hx/internal/encoding"
	"hx/internal/view"
)

type EditMode int

const (
	Overwrite EditMode = iota
	Insert
)

func (e EditMode) String() string {
	if e == Insert {
		return "INS"
	}
	return "OVR"
}

// hexEntry tracks a half-typed byte. When pending, the high nibble has
// already been written at the cursor.
type hexEntry struct {
	pending bool
	high    byte
}

type Options struct {
	BytesPerRow int
	Encoding    encoding.Encoding
	Insert      bool
	TextMode    bool
	Clipboard   clipboard.Clipboard
	Logger      *log.Logger
	Config      *config.Config
}

// Controller owns the document and every piece of editing state. It is
// driven entirely through Execute and never touches the terminal.
type Controller struct {
	doc         *buffer.Document
	cursor      int
	offset      int
	bytesPerRow int
	visibleRows int
	hexMode     bool
	edit        EditMode
	entry       hexEntry
	anchor      int
	hasAnchor   bool
	selection   *view.Range
	enc         encoding.Encoding
	lastSearch  string
	status      string
	quit        bool
	mode        Mode

	clip   clipboard.Clipboard
	logger *log.Logger
	cfg    *config.Config
}

func New(doc *buffer.Document, opts Options) *Controller {
	if doc == nil {
		doc = buffer.New()
	}
	c := &Controller{
		doc:         doc,
		bytesPerRow: opts.BytesPerRow,
		visibleRows: 1,
		hexMode:     !opts.TextMode,
		enc:         opts.Encoding,
		mode:        Normal{},
		clip:        opts.Clipboard,
		logger:      opts.Logger,
		cfg:         opts.Config,
	}
	if c.bytesPerRow < config.MinBytesPerRow || c.bytesPerRow > config.MaxBytesPerRow {
		c.bytesPerRow = 16
	}
	if opts.Insert {
		c.edit = Insert
	}
	if c.clip == nil {
		c.clip = &clipboard.Memory{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	return c
}

func (c *Controller) Document() *buffer.Document { return c.doc }
func (c *Controller) Cursor() int                 { return c.cursor }
func (c *Controller) Offset() int                 { return c.offset }
func (c *Controller) BytesPerRow() int            { return c.bytesPerRow }
func (c *Controller) HexMode() bool               { return c.hexMode }
func (c *Controller) EditMode() EditMode          { return c.edit }
func (c *Controller) Encoding() encoding.Encoding { return c.enc }
func (c *Controller) Status() string              { return c.status }
func (c *Controller) ShouldQuit() bool            { return c.quit }
func (c *Controller) Mode() Mode                  { return c.mode }
func (c *Controller) LastSearch() string          { return c.lastSearch }

// Selection returns the selected range, or nil.
func (c *Controller) Selection() *view.Range {
	if c.selection == nil {
		return nil
	}
	r := *c.selection
	return &r
}

// PendingNibble reports whether the first digit of a hex byte has been typed.
func (c *Controller) PendingNibble() bool { return c.entry.pending }

func (c *Controller) SetStatus(msg string) { c.status = msg }

// SetVisibleRows tells the controller how many data rows the view shows.
func (c *Controller) SetVisibleRows(rows int) {
	c.visibleRows = max(rows, 1)
	c.ensureVisible()
}

// Execute applies one action. ActNone is ignored without clearing the
// status, so an idle tick does not erase the last message.
func (c *Controller) Execute(a Action) {
	if a.Kind == ActNone {
		return
	}
	c.status = ""

	switch m := c.mode.(type) {
	case *Searching:
		c.handleSearch(m, a)
	case *Replacing:
		c.handleReplace(m, a)
	case *Prompting:
		c.handlePrompt(m, a)
	case *Confirming:
		c.handleConfirm(m, a)
	default:
		c.handleNormal(a)
	}
}

func (c *Controller) isByteInput(a Action) bool {
	switch a.Kind {
	case ActInputHex:
		return true
	case ActChar:
		return c.hexMode
	}
	return false
}

func (c *Controller) handleNormal(a Action) {
	if !c.isByteInput(a) {
		c.entry = hexEntry{}
	}

	switch a.Kind {
	case ActQuit:
		c.requestQuit()
	case ActSave:
		c.save()
	case ActSaveAs:
		c.mode = &Prompting{Kind: PromptSaveAs, Input: c.doc.Path()}
	case ActOpenFile:
		c.mode = &Prompting{Kind: PromptOpen}
	case ActKillBuffer:
		if c.doc.IsModified() {
			c.mode = &Confirming{Pending: PendingKill}
		} else {
			c.killBuffer()
		}
	case ActExecuteCommand:
		c.mode = &Prompting{Kind: PromptCommand}
	case ActStartGoto:
		c.mode = &Prompting{Kind: PromptGoto}

	case ActCursorUp:
		c.cursorUp()
		c.updateSelection()
	case ActCursorDown:
		c.cursorDown()
		c.updateSelection()
	case ActCursorLeft:
		c.cursorLeft()
		c.updateSelection()
	case ActCursorRight:
		c.cursorRight()
		c.updateSelection()
	case ActCursorHome:
		c.cursor = c.cursor / c.bytesPerRow * c.bytesPerRow
		c.updateSelection()
	case ActCursorEnd:
		// The last row ends on the end-of-file position.
		rowStart := c.cursor / c.bytesPerRow * c.bytesPerRow
		c.cursor = min(rowStart+c.bytesPerRow-1, c.doc.Len())
		c.ensureVisible()
		c.updateSelection()
	case ActPageUp:
		c.pageUp()
		c.updateSelection()
	case ActPageDown:
		c.pageDown()
		c.updateSelection()
	case ActGotoBeginning:
		c.cursor = 0
		c.offset = 0
		c.updateSelection()
	case ActGotoEnd:
		c.cursor = c.doc.Len()
		c.ensureVisible()
		c.updateSelection()

	case ActStartSelection:
		c.startSelection()
	case ActClearSelection:
		c.clearSelection()
	case ActSelectAll:
		c.selectAll()
	case ActSelectUp:
		c.selectMove(c.cursorUp)
	case ActSelectDown:
		c.selectMove(c.cursorDown)
	case ActSelectLeft:
		c.selectMove(c.cursorLeft)
	case ActSelectRight:
		c.selectMove(c.cursorRight)

	case ActCopy:
		c.copySelection(clipboard.Spaced)
	case ActCopyHex:
		c.copySelection(clipboard.CArray)
	case ActCut:
		c.cut()
	case ActPaste:
		c.paste(a.Text)

	case ActToggleMode:
		c.hexMode = !c.hexMode
	case ActToggleEditMode:
		if c.edit == Overwrite {
			c.edit = Insert
		} else {
			c.edit = Overwrite
		}
	case ActToggleEncoding:
		c.setEncoding(c.enc.Next())

	case ActChar:
		if c.hexMode {
			c.inputHex(a.Char)
		} else {
			c.inputText(a.Char)
		}
	case ActInputHex:
		c.inputHex(a.Char)
	case ActInputASCII:
		c.inputText(a.Char)
	case ActDelete:
		c.deleteAt(false)
	case ActBackspace:
		c.deleteAt(true)
	case ActCancel:
		c.clearSelection()
		c.status = "Quit"

	case ActUndo:
		c.undo()
	case ActRedo:
		c.redo()

	case ActStartSearch:
		c.mode = &Searching{Anchor: c.cursor}
	case ActStartSearchBack:
		c.mode = &Searching{Anchor: c.cursor, Backward: true}
	case ActSearchNext:
		c.repeatSearch(true)
	case ActSearchPrev:
		c.repeatSearch(false)
	case ActStartReplace:
		if c.rejectReadOnly() {
			return
		}
		c.mode = &Replacing{Anchor: c.cursor}
	}
}

func (c *Controller) requestQuit() {
	if c.doc.IsModified() {
		c.mode = &Confirming{Pending: PendingQuit}
		return
	}
	c.quit = true
}

func (c *Controller) rejectReadOnly() bool {
	if !c.doc.ReadOnly() {
		return false
	}
	c.status = "Buffer is read-only"
	return true
}

// fail reports an error on the status line and in the log.
func (c *Controller) fail(prefix string, err error) {
	c.status = fmt.Sprintf("%s: %v", prefix, err)
	c.logger.Printf("%s: %v", prefix, err)
}

func (c *Controller) save() {
	if c.doc.Path() == "" {
		c.mode = &Prompting{Kind: PromptSaveAs}
		c.status = "No file name"
		return
	}
	if err := c.doc.Save(); err != nil {
		c.fail("Save failed", err)
		return
	}
	c.status = "Saved"
	c.logger.Printf("saved %s (%d bytes)", c.doc.Path(), c.doc.Len())
}

func (c *Controller) setEncoding(enc encoding.Encoding) {
	c.enc = enc
	if c.cfg != nil {
		c.cfg.Editor.Encoding = enc.Name()
	}
	c.status = "Encoding: " + enc.Name()
}

func (c *Controller) undo() {
	if c.rejectReadOnly() {
		return
	}
	pos, ok := c.doc.Undo()
	if !ok {
		c.status = "Nothing to undo"
		return
	}
	c.cursor = pos
	c.ensureVisible()
	c.status = "Undo"
}

func (c *Controller) redo() {
	if c.rejectReadOnly() {
		return
	}
	pos, ok := c.doc.Redo()
	if !ok {
		c.status = "Nothing to redo"
		return
	}
	c.cursor = pos
	c.ensureVisible()
	c.status = "Redo"
}

func (c *Controller) openFile(path string) {
	if path == "" {
		c.status = "No file specified"
		return
	}
	doc, err := buffer.Open(path)
	if err != nil {
		c.fail("Failed to open", err)
		return
	}
	c.replaceDocument(doc)
	c.status = "Opened: " + path
	c.logger.Printf("opened %s (%d bytes)", path, doc.Len())
}

func (c *Controller) killBuffer() {
	c.replaceDocument(buffer.New())
	c.status = "Buffer killed"
}

func (c *Controller) replaceDocument(doc *buffer.Document) {
	c.doc = doc
	c.cursor = 0
	c.offset = 0
	c.entry = hexEntry{}
	c.clearSelection()
}

func (c *Controller) saveAs(path string) {
	if path == "" {
		c.status = "No file specified"
		return
	}
	if err := c.doc.SaveAs(path); err != nil {
		c.fail("Failed to save", err)
		return
	}
	c.status = "Saved: " + path
	c.logger.Printf("saved %s (%d bytes)", path, c.doc.Len())
}

// CheckDisk reports on the status line when the file was changed by another
// program since it was loaded or saved.
func (c *Controller) CheckDisk() {
	changed, err := c.doc.HasChangedOnDisk()
	if err != nil {
		if !errors.Is(err, buffer.ErrNoPath) {
			c.logger.Printf("disk check %s: %v", c.doc.Path(), err)
		}
		return
	}
	if changed {
		c.status = "File changed on disk"
	}
}
