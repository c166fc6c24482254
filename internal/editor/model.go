package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hx/internal/config"
	"hx/internal/view"
)

// Model adapts a Controller to the bubbletea event loop.
type Model struct {
	ctrl     *Controller
	keys     Keymap
	styles   *config.Styles
	width    int
	height   int
	showHelp bool
	title    string
}

func NewModel(ctrl *Controller, styles *config.Styles) *Model {
	if styles == nil {
		styles = config.PlainStyles()
	}
	return &Model{ctrl: ctrl, styles: styles}
}

func (m *Model) Controller() *Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	m.title = m.windowTitle()
	return tea.SetWindowTitle(m.title)
}

func (m *Model) windowTitle() string {
	name := m.ctrl.Document().Filename()
	if name == "" {
		name = "[New File]"
	}
	if m.ctrl.Document().IsModified() {
		name += " [+]"
	}
	return "hx - " + name
}

// dataRows is the number of hex rows that fit between the header and the
// status line.
func (m *Model) dataRows() int {
	return max(m.height-2, 1)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.SetVisibleRows(m.dataRows())
		return m, nil

	case tea.FocusMsg:
		m.ctrl.CheckDisk()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if s := msg.String(); s == "f1" || s == "esc" || s == "q" || s == "ctrl+g" {
			m.showHelp = false
		}
		return m, nil
	}
	if msg.String() == "f1" {
		m.showHelp = true
		return m, nil
	}

	_, normal := m.ctrl.Mode().(Normal)
	for _, a := range m.keys.Resolve(msg, !normal) {
		m.ctrl.Execute(a)
	}
	if m.keys.Pending() {
		m.ctrl.SetStatus("C-x-")
	}
	if m.ctrl.ShouldQuit() {
		return m, tea.Quit
	}
	if t := m.windowTitle(); t != m.title {
		m.title = t
		return m, tea.SetWindowTitle(t)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	c := m.ctrl
	mode := view.HexMode
	if !c.HexMode() {
		mode = view.TextMode
	}
	lines := view.New(c.Document().Data()).
		Offset(c.Offset()).
		Cursor(c.Cursor()).
		Selection(c.Selection()).
		BytesPerRow(c.BytesPerRow()).
		Rows(m.dataRows()).
		Encoding(c.Encoding()).
		Mode(mode).
		Insert(c.EditMode() == Insert).
		Styles(m.styles).
		Lines()

	if confirm, ok := c.Mode().(*Confirming); ok {
		lines = append(lines, "", m.renderConfirmDialog(confirm))
	}
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}

	status := m.styles.Status
	if _, normal := c.Mode().(Normal); !normal {
		status = m.styles.Prompt
	}
	lines = append(lines, status.Width(m.width).Render(c.StatusLine()))

	return strings.Join(lines, "\n")
}

func (m *Model) renderConfirmDialog(c *Confirming) string {
	var what string
	switch c.Pending {
	case PendingQuit:
		what = "Buffer modified. Save before quitting?"
	case PendingOpen:
		what = "Buffer modified. Save before opening " + c.Path + "?"
	case PendingKill:
		what = "Buffer modified. Save before killing it?"
	}
	return m.styles.Dialog.Render(what + "\n" + c.Prompt())
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"MOVEMENT", [][2]string{
		{"C-f C-b C-n C-p", "Right, left, down, up (arrows too)"},
		{"C-a C-e", "Start/end of row"},
		{"C-v M-v", "Page down/up"},
		{"M-< M->", "Start/end of buffer"},
		{"M-g", "Goto address"},
	}},
	{"EDITING", [][2]string{
		{"Tab", "Toggle hex/text input"},
		{"Insert", "Toggle overwrite/insert"},
		{"F2", "Cycle encoding"},
		{"C-d Backspace", "Delete at/before cursor"},
		{"C-u C-_", "Undo/redo"},
	}},
	{"SELECTION", [][2]string{
		{"C-Space", "Set mark"},
		{"Shift+arrows", "Extend selection"},
		{"C-w M-w M-W", "Cut, copy, copy as C array"},
		{"C-y", "Paste (hex text or literal)"},
	}},
	{"SEARCH", [][2]string{
		{"C-s C-r", "Incremental search forward/backward"},
		{"M-%", "Query replace"},
	}},
	{"FILES", [][2]string{
		{"C-x C-f", "Open file"},
		{"C-x C-s", "Save"},
		{"C-x C-w", "Save as"},
		{"C-x k", "Kill buffer"},
		{"C-x C-c", "Quit"},
		{"M-x", "Command (goto fill insert width encoding write-config help)"},
	}},
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.HelpTitle.Render("hx - hex editor"))
	b.WriteString("\n")
	for _, s := range helpSections {
		b.WriteString("\n")
		b.WriteString(m.styles.HelpTitle.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.keys {
			key := m.styles.HelpKey.Render(lipgloss.NewStyle().Width(18).Render(k[0]))
			b.WriteString("  " + key + m.styles.HelpDesc.Render(k[1]) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Disabled.Render("Press F1 or Esc to close."))
	return b.String()
}
