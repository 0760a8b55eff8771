package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers that expose a descriptor.
type fder interface{ Fd() uintptr }

// IsTTY returns true if the given writer is a terminal.
func IsTTY(w io.Writer) bool {
	return isTerminal(w)
}

// IsInteractive reports whether both ends of a prompt are terminals, which
// is required before starting a full-screen picker.
func IsInteractive(in io.Reader, out io.Writer) bool {
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(v any) bool {
	if f, ok := v.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// It returns false if the writer is not a TTY, NO_COLOR is set, or TERM is
// "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
