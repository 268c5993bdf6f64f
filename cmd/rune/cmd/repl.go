package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/shengbojia/rune-interpreter/internal/interp"
	"github.com/shengbojia/rune-interpreter/internal/runeio"
)

// runREPL implements the line-at-a-time read-eval-print loop described in
// spec.md §6: one pipeline run per line, errors reported to stderr without
// aborting the session. Grounded on archevan-glox/main.go's runPrompt, with
// the prompt gated on an actual terminal per SPEC_FULL.md §6.
func runREPL() error {
	interactive := runeio.IsInteractive(os.Stdout)
	interpreter := interp.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Println()
			}
			return scanner.Err()
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		if err := runSource(line, interpreter); err != nil {
			var ec *exitCodeError
			if asExitCodeError(err, &ec) {
				if !ec.reported {
					fmt.Fprintln(os.Stderr, ec.err)
				}
				continue
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
