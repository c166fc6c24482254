package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Keymap turns key events into actions using Emacs-style bindings. It holds
// the C-x prefix state between keys.
type Keymap struct {
	prefix bool
}

var normalKeys = map[string]ActionKind{
	"ctrl+g": ActCancel,
	"esc":    ActCancel,

	"ctrl+f":      ActCursorRight,
	"ctrl+b":      ActCursorLeft,
	"ctrl+n":      ActCursorDown,
	"ctrl+p":      ActCursorUp,
	"ctrl+a":      ActCursorHome,
	"ctrl+e":      ActCursorEnd,
	"ctrl+v":      ActPageDown,
	"alt+v":       ActPageUp,
	"alt+<":       ActGotoBeginning,
	"alt+>":       ActGotoEnd,
	"up":          ActCursorUp,
	"down":        ActCursorDown,
	"left":        ActCursorLeft,
	"right":       ActCursorRight,
	"home":        ActCursorHome,
	"end":         ActCursorEnd,
	"pgup":        ActPageUp,
	"pgdown":      ActPageDown,
	"ctrl+home":   ActGotoBeginning,
	"ctrl+end":    ActGotoEnd,
	"shift+up":    ActSelectUp,
	"shift+down":  ActSelectDown,
	"shift+left":  ActSelectLeft,
	"shift+right": ActSelectRight,

	"ctrl+@": ActStartSelection,
	"ctrl+w": ActCut,
	"alt+w":  ActCopy,
	"alt+W":  ActCopyHex,
	"ctrl+y": ActPaste,

	"tab":    ActToggleMode,
	"insert": ActToggleEditMode,
	"f2":     ActToggleEncoding,

	"ctrl+d":    ActDelete,
	"delete":    ActDelete,
	"backspace": ActBackspace,
	"enter":     ActEnter,

	"ctrl+u": ActUndo,
	"ctrl+_": ActRedo,

	"ctrl+s": ActStartSearch,
	"ctrl+r": ActStartSearchBack,
	"alt+%":  ActStartReplace,
	"alt+g":  ActStartGoto,
	"alt+x":  ActExecuteCommand,
}

var prefixKeys = map[string]ActionKind{
	"ctrl+c": ActQuit,
	"ctrl+s": ActSave,
	"ctrl+f": ActOpenFile,
	"ctrl+w": ActSaveAs,
	"k":      ActKillBuffer,
	"h":      ActSelectAll,
	"u":      ActUndo,
}

var elevatedKeys = map[string]ActionKind{
	"esc":       ActCancel,
	"ctrl+g":    ActCancel,
	"enter":     ActEnter,
	"backspace": ActBackspace,
	"delete":    ActDelete,
	"ctrl+s":    ActSearchNext,
	"ctrl+r":    ActSearchPrev,
}

// Pending reports whether C-x has been pressed and awaits its second key.
func (k *Keymap) Pending() bool { return k.prefix }

// Resolve maps msg to actions. elevated selects the line-editing bindings
// used while a search, replace, prompt or confirmation is active.
func (k *Keymap) Resolve(msg tea.KeyMsg, elevated bool) []Action {
	if msg.Paste {
		return []Action{Paste(string(msg.Runes))}
	}

	key := msg.String()
	if elevated {
		k.prefix = false
		if kind, ok := elevatedKeys[key]; ok {
			return []Action{Do(kind)}
		}
		return typed(msg)
	}

	if k.prefix {
		k.prefix = false
		if kind, ok := prefixKeys[key]; ok {
			return []Action{Do(kind)}
		}
		return []Action{Do(ActCancel)}
	}

	if key == "ctrl+x" {
		k.prefix = true
		return nil
	}
	if kind, ok := normalKeys[key]; ok {
		return []Action{Do(kind)}
	}
	return typed(msg)
}

// typed returns one ActChar per rune of an unmodified character key.
func typed(msg tea.KeyMsg) []Action {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeySpace:
		return []Action{Char(' ')}
	case tea.KeyRunes:
		out := make([]Action, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, Char(r))
		}
		return out
	}
	return nil
}
