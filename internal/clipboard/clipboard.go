// Package clipboard formats byte ranges as text and moves that text through
// the system clipboard and the terminal's OSC 52 clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

var ErrEmpty = errors.New("clipboard empty or unavailable")

type HexFormat int

const (
	Spaced HexFormat = iota // "DE AD BE EF"
	Compact                 // "DEADBEEF"
	CArray                  // "0xDE, 0xAD, 0xBE, 0xEF"
)

func FormatHex(data []byte, f HexFormat) string {
	var b strings.Builder
	for i, v := range data {
		switch f {
		case Compact:
			fmt.Fprintf(&b, "%02X", v)
		case CArray:
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "0x%02X", v)
		default:
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02X", v)
		}
	}
	return b.String()
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// System is the desktop clipboard.
type System struct{}

func (System) Write(text string) error {
	if clipboard.Unsupported {
		return ErrEmpty
	}
	return clipboard.WriteAll(text)
}

func (System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrEmpty
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// OSC52 writes to the terminal clipboard with an escape sequence. Reading
// back is not supported by most terminals.
type OSC52 struct {
	Out  io.Writer
	Tmux bool
}

func (o OSC52) Write(text string) error {
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(o.Out)
	return err
}

func (OSC52) Read() (string, error) {
	return "", ErrEmpty
}

// Memory keeps the text in process. Used when no other clipboard works and
// in tests.
type Memory struct {
	text string
}

func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

// Multi writes to every clipboard and reads from the first that answers.
type Multi []Clipboard

func (m Multi) Write(text string) error {
	var errs []error
	ok := false
	for _, c := range m {
		if err := c.Write(text); err != nil {
			errs = append(errs, err)
			continue
		}
		ok = true
	}
	if ok {
		return nil
	}
	return errors.Join(errs...)
}

func (m Multi) Read() (string, error) {
	for _, c := range m {
		if text, err := c.Read(); err == nil {
			return text, nil
		}
	}
	return "", ErrEmpty
}
