package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/hsv/internal/errors"
)

// ColorMode selects when ANSI colors are written.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", errors.Newf("unknown color mode %q (want auto, always, or never)", s)
}

// UseColor reports whether output to w should be colored under mode.
// In auto mode w must be a terminal, NO_COLOR must be unset, and TERM must
// not be "dumb".
func UseColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return autoColor(isTerminal(w))
}

func autoColor(tty bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return tty
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
