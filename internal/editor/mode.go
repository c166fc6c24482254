package editor

import "fmt"

// Mode is the controller's current input mode. Exactly one is active, so at
// most one of search, replace, prompt and confirm can be in progress.
type Mode interface {
	Prompt() string
	mode()
}

type Normal struct{}

type Searching struct {
	Query    string
	Anchor   int
	Backward bool
}

type ReplaceStage int

const (
	EnteringSearch ReplaceStage = iota
	EnteringReplace
	ConfirmingReplace
)

type Replacing struct {
	Stage       ReplaceStage
	Pattern     string
	Replacement string
	Anchor      int

	from, to []byte
}

type PromptKind int

const (
	PromptGoto PromptKind = iota
	PromptOpen
	PromptSaveAs
	PromptCommand
	PromptCommandArg
)

type Prompting struct {
	Kind    PromptKind
	Input   string
	Command string
}

type Pending int

const (
	PendingQuit Pending = iota
	PendingOpen
	PendingKill
)

type Confirming struct {
	Pending Pending
	Path    string
}

func (Normal) mode()      {}
func (*Searching) mode()  {}
func (*Replacing) mode()  {}
func (*Prompting) mode()  {}
func (*Confirming) mode() {}

func (Normal) Prompt() string { return "" }

func (s *Searching) Prompt() string {
	if s.Backward {
		return fmt.Sprintf("I-search backward: %s_", s.Query)
	}
	return fmt.Sprintf("I-search: %s_", s.Query)
}

func (r *Replacing) Prompt() string {
	switch r.Stage {
	case EnteringSearch:
		return fmt.Sprintf("Query replace: %s_", r.Pattern)
	case EnteringReplace:
		return fmt.Sprintf("Query replace %s with: %s_", r.Pattern, r.Replacement)
	}
	return fmt.Sprintf("Replace %s with %s? (y/n/!/q)", r.Pattern, r.Replacement)
}

var argPrompts = map[string]string{
	"fill":     "Fill with byte (hex):",
	"insert":   "Insert (count [byte]):",
	"width":    "Bytes per row:",
	"encoding": "Encoding:",
}

func (p *Prompting) Prompt() string {
	var label string
	switch p.Kind {
	case PromptGoto:
		label = "Goto address:"
	case PromptOpen:
		label = "Open file:"
	case PromptSaveAs:
		label = "Save as:"
	case PromptCommand:
		label = "M-x"
	case PromptCommandArg:
		label = argPrompts[p.Command]
		if label == "" {
			label = "Arg:"
		}
	}
	return fmt.Sprintf("%s %s_", label, p.Input)
}

func (c *Confirming) Prompt() string {
	return "Save changes? (y)es (n)o (c)ancel"
}
