// Command rune is the REPL/file driver for the Rune interpreter, wiring
// together the scanner, parser, resolver and evaluator behind the external
// interface described in spec.md §6.
package main

import (
	"os"

	"github.com/shengbojia/rune-interpreter/cmd/rune/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
