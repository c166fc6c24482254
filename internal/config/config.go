package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"hx/internal/encoding"
)

type Theme struct {
	Address             string `toml:"address"`
	Header              string `toml:"header"`
	CursorBackground    string `toml:"cursor_background"`
	CursorInsert        string `toml:"cursor_insert_background"`
	SelectionBackground string `toml:"selection_background"`
	StatusBackground    string `toml:"status_background"`
	StatusForeground    string `toml:"status_foreground"`
	PromptColor         string `toml:"prompt_color"`
	ZeroByteColor       string `toml:"zero_byte_color"`
	DisabledColor       string `toml:"disabled_color"`
}

type Editor struct {
	BytesPerRow int    `toml:"bytes_per_row"`
	Encoding    string `toml:"encoding"`
	InsertMode  bool   `toml:"insert_mode"`
	TextMode    bool   `toml:"text_mode"`
	OSC52       bool   `toml:"osc52"`
}

type Config struct {
	Theme  Theme  `toml:"theme"`
	Editor Editor `toml:"editor"`
}

const (
	MinBytesPerRow = 1
	MaxBytesPerRow = 64
)

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			Address:             "#888888",
			Header:              "#5F87FF",
			CursorBackground:    "#0000FF",
			CursorInsert:        "#FF0000",
			SelectionBackground: "#FFAA00",
			StatusBackground:    "#0000FF",
			StatusForeground:    "#FFFFFF",
			PromptColor:         "#FFFF00",
			ZeroByteColor:       "#666666",
			DisabledColor:       "#666666",
		},
		Editor: Editor{
			BytesPerRow: 16,
			Encoding:    encoding.UTF8.Name(),
		},
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hx.toml"
	}
	return filepath.Join(home, ".config", "hx", "hx.toml")
}

// Load reads the config file, falling back to defaults when it is missing.
// Values the file leaves out keep their defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate clamps out-of-range values back to usable ones and reports the
// first problem found.
func (c *Config) Validate() error {
	var err error
	if c.Editor.BytesPerRow < MinBytesPerRow || c.Editor.BytesPerRow > MaxBytesPerRow {
		err = fmt.Errorf("bytes_per_row %d out of range %d-%d", c.Editor.BytesPerRow, MinBytesPerRow, MaxBytesPerRow)
		c.Editor.BytesPerRow = DefaultConfig().Editor.BytesPerRow
	}
	if _, perr := encoding.Parse(c.Editor.Encoding); perr != nil {
		if err == nil {
			err = perr
		}
		c.Editor.Encoding = encoding.UTF8.Name()
	}
	return err
}

// Encoding returns the configured encoding, UTF-8 when unrecognised.
func (c *Config) Encoding() encoding.Encoding {
	enc, err := encoding.Parse(c.Editor.Encoding)
	if err != nil {
		return encoding.UTF8
	}
	return enc
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

type Styles struct {
	Address      lipgloss.Style
	Header       lipgloss.Style
	Cursor       lipgloss.Style
	CursorInsert lipgloss.Style
	Selection    lipgloss.Style
	Status       lipgloss.Style
	Prompt       lipgloss.Style
	Zero         lipgloss.Style
	Disabled     lipgloss.Style
	Normal       lipgloss.Style
	HelpTitle    lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
	Dialog       lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Address: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Address)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Header)).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		CursorInsert: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.CursorInsert)).
			Foreground(lipgloss.Color("#FFFFFF")),
		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.SelectionBackground)).
			Foreground(lipgloss.Color("#000000")),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBackground)).
			Foreground(lipgloss.Color(theme.StatusForeground)),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.PromptColor)).
			Bold(true),
		Zero: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.ZeroByteColor)),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DisabledColor)),
		Normal: lipgloss.NewStyle(),
		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.PromptColor)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Header)).
			Padding(1, 2),
	}
}

// PlainStyles renders without any escape sequences.
func PlainStyles() *Styles {
	s := lipgloss.NewStyle()
	return &Styles{
		Address: s, Header: s, Cursor: s, CursorInsert: s, Selection: s,
		Status: s, Prompt: s, Zero: s, Disabled: s, Normal: s,
		HelpTitle: s, HelpKey: s, HelpDesc: s, Dialog: s,
	}
}
