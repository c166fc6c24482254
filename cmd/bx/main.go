// Command bx is a pipe-friendly companion to hx: it finds, slices, replaces
// and patches bytes, prints statistics and converts between hex and binary.
// Input comes from -i or stdin; binary results go to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"hx/internal/bintool"
)

const usage = `usage: bx <command> [flags] [args]

commands:
  find PATTERN     [-i file] [-f hex|dec|both]   print offsets of a hex pattern
  slice START:END  [-i file] [-x]                extract a byte range
  replace FROM TO  [-i file] [-a]                replace hex pattern (first, or all with -a); count on stderr
  patch OFF=HEX... [-i file]                     overwrite bytes at offsets
  info             [-i file]                     size, entropy and byte classes
  conv DIRECTION   [-i file] [-w width]          bin2hex (b2h) or hex2bin (h2b)
`

var errUsage = errors.New("bad usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "bx: %v\n\n%s", err, usage)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "bx: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bx "+cmd, flag.ContinueOnError)
	input := fs.String("i", "", "input file (default stdin)")

	switch cmd {
	case "find":
		format := fs.String("f", "hex", "offset format: hex, dec or both")
		pos, err := parse(fs, args, 1, 1)
		if err != nil {
			return err
		}
		return find(pos[0], *format, *input, stdin, stdout)

	case "slice":
		hexOut := fs.Bool("x", false, "print a hex dump instead of raw bytes")
		pos, err := parse(fs, args, 1, 1)
		if err != nil {
			return err
		}
		return slice(pos[0], *hexOut, *input, stdin, stdout)

	case "replace":
		all := fs.Bool("a", false, "replace every occurrence")
		pos, err := parse(fs, args, 2, 2)
		if err != nil {
			return err
		}
		return replace(pos[0], pos[1], *all, *input, stdin, stdout, stderr)

	case "patch":
		pos, err := parse(fs, args, 1, -1)
		if err != nil {
			return err
		}
		return patch(pos, *input, stdin, stdout)

	case "info":
		if _, err := parse(fs, args, 0, 0); err != nil {
			return err
		}
		data, err := readInput(*input, stdin)
		if err != nil {
			return err
		}
		_, err = bintool.Analyze(data).WriteTo(stdout)
		return err

	case "conv":
		width := fs.Int("w", 16, "bytes per line for bin2hex")
		pos, err := parse(fs, args, 1, 1)
		if err != nil {
			return err
		}
		return conv(pos[0], *width, *input, stdin, stdout)
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// parse accepts flags before, between and after positional arguments and
// checks the positional count. max < 0 means unbounded.
func parse(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	fs.SetOutput(io.Discard)
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}

	if len(pos) < minArgs || (maxArgs >= 0 && len(pos) > maxArgs) {
		return nil, fmt.Errorf("%w: %s takes %s", errUsage, fs.Name(), argCount(minArgs, maxArgs))
	}
	return pos, nil
}

func argCount(minArgs, maxArgs int) string {
	switch {
	case maxArgs < 0:
		return fmt.Sprintf("at least %d argument(s)", minArgs)
	case minArgs == maxArgs:
		return fmt.Sprintf("%d argument(s)", minArgs)
	}
	return fmt.Sprintf("%d-%d arguments", minArgs, maxArgs)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func find(pattern, format, input string, stdin io.Reader, stdout io.Writer) error {
	f, err := bintool.ParseOffsetFormat(format)
	if err != nil {
		return err
	}
	pat, err := bintool.ParseHex(pattern)
	if err != nil {
		return err
	}
	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	for _, off := range bintool.Find(data, pat) {
		if _, err := fmt.Fprintln(stdout, bintool.FormatOffset(off, f)); err != nil {
			return err
		}
	}
	return nil
}

func slice(rng string, hexOut bool, input string, stdin io.Reader, stdout io.Writer) error {
	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	part, start, err := bintool.Slice(data, rng)
	if err != nil {
		return err
	}
	if hexOut {
		return bintool.HexDump(stdout, part, start)
	}
	_, err = stdout.Write(part)
	return err
}

// replace writes the result to stdout and the replacement count to stderr,
// keeping stdout clean for pipes.
func replace(from, to string, all bool, input string, stdin io.Reader, stdout, stderr io.Writer) error {
	fromBytes, err := bintool.ParseHex(from)
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	toBytes, err := bintool.ParseHex(to)
	if err != nil {
		return fmt.Errorf("replacement: %w", err)
	}
	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	out, n := bintool.Replace(data, fromBytes, toBytes, all)
	if _, err := stdout.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stderr, "bx: replaced %d occurrence(s)\n", n)
	return err
}

func patch(specs []string, input string, stdin io.Reader, stdout io.Writer) error {
	patches := make([]bintool.Patch, 0, len(specs))
	for _, s := range specs {
		p, err := bintool.ParsePatch(s)
		if err != nil {
			return err
		}
		patches = append(patches, p)
	}
	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	if err := bintool.Apply(data, patches); err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func conv(direction string, width int, input string, stdin io.Reader, stdout io.Writer) error {
	switch direction {
	case "bin2hex", "b2h":
		data, err := readInput(input, stdin)
		if err != nil {
			return err
		}
		return bintool.Bin2Hex(stdout, data, width)
	case "hex2bin", "h2b":
		text, err := readInput(input, stdin)
		if err != nil {
			return err
		}
		return bintool.Hex2Bin(stdout, string(text))
	}
	return fmt.Errorf("%w: direction must be bin2hex (b2h) or hex2bin (h2b)", errUsage)
}
