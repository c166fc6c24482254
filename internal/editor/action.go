package editor

type ActionKind int

const (
	ActNone ActionKind = iota

	ActQuit
	ActSave
	ActSaveAs
	ActOpenFile
	ActKillBuffer
	ActExecuteCommand
	ActStartGoto

	ActCursorUp
	ActCursorDown
	ActCursorLeft
	ActCursorRight
	ActCursorHome
	ActCursorEnd
	ActPageUp
	ActPageDown
	ActGotoBeginning
	ActGotoEnd

	ActStartSelection
	ActClearSelection
	ActSelectAll
	ActSelectUp
	ActSelectDown
	ActSelectLeft
	ActSelectRight

	ActCopy
	ActCopyHex
	ActCut
	ActPaste

	ActToggleMode
	ActToggleEditMode
	ActToggleEncoding

	// ActChar is a printable character. In Normal mode it is routed to hex
	// or text entry depending on the input mode; elevated modes append it to
	// their input line.
	ActChar
	ActInputHex
	ActInputASCII
	ActDelete
	ActBackspace
	ActEnter
	ActCancel

	ActUndo
	ActRedo

	ActStartSearch
	ActStartSearchBack
	ActSearchNext
	ActSearchPrev
	ActStartReplace
)

// Action is one logical input event. Char carries the rune for character
// actions and Text the payload of a paste.
type Action struct {
	Kind ActionKind
	Char rune
	Text string
}

func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

func Char(r rune) Action {
	return Action{Kind: ActChar, Char: r}
}

func Paste(text string) Action {
	return Action{Kind: ActPaste, Text: text}
}
