// Package terminal reports whether modinst is attached to a terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
// Buffers and other non-file values are never terminals.
func IsTerminal(v any) bool {
	f, ok := v.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind v, or fallback when v is
// not a terminal.
func Width(v any, fallback int) int {
	f, ok := v.(fdWriter)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
