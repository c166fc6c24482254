package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"hx/internal/buffer"
	"hx/internal/clipboard"
	"hx/internal/config"
	"hx/internal/editor"
	"hx/internal/encoding"
)

func main() {
	bytesPerRow := flag.Int("w", 0, "bytes per row (default from config, else 16)")
	readOnly := flag.Bool("r", false, "open read-only")
	encName := flag.String("e", "", "text encoding (UTF-8, Shift_JIS, EUC-JP, UTF-16LE, UTF-16BE, ISO-8859-1)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hx [-w n] [-r] [-e encoding] [file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args(), *bytesPerRow, *readOnly, *encName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, bytesPerRow int, readOnly bool, encName string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one file, got %d", len(args))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger := log.New(io.Discard, "", 0)
	if path := os.Getenv("HX_LOG"); path != "" {
		f, err := tea.LogToFile(path, "hx")
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	opts := editor.Options{
		BytesPerRow: cfg.Editor.BytesPerRow,
		Encoding:    cfg.Encoding(),
		Insert:      cfg.Editor.InsertMode,
		TextMode:    cfg.Editor.TextMode,
		Logger:      logger,
		Config:      cfg,
		Clipboard:   newClipboard(cfg.Editor.OSC52),
	}
	if bytesPerRow != 0 {
		if bytesPerRow < config.MinBytesPerRow || bytesPerRow > config.MaxBytesPerRow {
			return fmt.Errorf("-w must be %d-%d", config.MinBytesPerRow, config.MaxBytesPerRow)
		}
		opts.BytesPerRow = bytesPerRow
	}
	if encName != "" {
		if opts.Encoding, err = encoding.Parse(encName); err != nil {
			return err
		}
	}

	piped := !term.IsTerminal(int(os.Stdin.Fd()))
	doc, err := loadDocument(args, piped)
	if err != nil {
		return err
	}
	doc.SetReadOnly(readOnly)

	ctrl := editor.New(doc, opts)
	model := editor.NewModel(ctrl, config.NewStyles(&cfg.Theme))

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if piped {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// loadDocument opens the named file, else the piped stdin, else an empty
// buffer.
func loadDocument(args []string, piped bool) (*buffer.Document, error) {
	if len(args) == 1 {
		return buffer.Open(args[0])
	}
	if piped {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return buffer.FromBytes(data), nil
	}
	return buffer.New(), nil
}

// newClipboard writes through every available backend and reads from the
// system clipboard, falling back to the last in-process copy.
func newClipboard(osc52 bool) clipboard.Clipboard {
	multi := clipboard.Multi{clipboard.System{}}
	if osc52 {
		multi = append(multi, clipboard.OSC52{Out: os.Stdout, Tmux: os.Getenv("TMUX") != ""})
	}
	return append(multi, &clipboard.Memory{})
}
