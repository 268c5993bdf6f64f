// Package runeio provides the small terminal-awareness helpers the REPL
// needs: a prompt that only appears when stdout is actually a terminal, per
// SPEC_FULL.md §6, grounded on funvibe-funxy's builtins_term.go use of
// mattn/go-isatty for the same TTY/non-TTY distinction.
package runeio

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether out is connected to a terminal. Piped or
// redirected output (e.g. `rune < script.rune`) is not interactive, and the
// REPL must not write a prompt to it.
func IsInteractive(out *os.File) bool {
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
