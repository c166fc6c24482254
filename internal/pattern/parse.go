package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func isHexString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func hasHexLetter(s string) bool {
	return strings.ContainsAny(s, "abcdefABCDEF")
}

// ParseAddress accepts 0x-prefixed hex, hex with a trailing h, bare hex when
// a letter A-F is present, and decimal otherwise.
func ParseAddress(text string) (int, error) {
	s := strings.TrimSpace(narrow(text))
	if s == "" {
		return 0, fmt.Errorf("%w: no address", ErrParse)
	}

	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 63)
	case strings.HasSuffix(s, "h") || strings.HasSuffix(s, "H"):
		v, err = strconv.ParseUint(s[:len(s)-1], 16, 63)
	case isHexString(s) && hasHexLetter(s):
		v, err = strconv.ParseUint(s, 16, 63)
	default:
		v, err = strconv.ParseUint(s, 10, 63)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid address %q", ErrParse, text)
	}
	return int(v), nil
}

// ParseByte accepts 0x-prefixed hex, one or two bare hex digits, or a
// decimal value up to 255.
func ParseByte(text string) (byte, error) {
	s := strings.TrimSpace(narrow(text))

	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 8)
	case len(s) <= 2 && isHexString(s):
		v, err = strconv.ParseUint(s, 16, 8)
	default:
		v, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid byte value %q", ErrParse, text)
	}
	return byte(v), nil
}

func ParseCount(text string) (int, error) {
	s := strings.TrimSpace(narrow(text))

	var (
		v   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 31)
	} else {
		v, err = strconv.ParseUint(s, 10, 31)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid count %q", ErrParse, text)
	}
	return int(v), nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
