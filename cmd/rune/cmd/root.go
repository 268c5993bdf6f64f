// Package cmd implements the rune command-line driver described in
// SPEC_FULL.md §6: a cobra command tree mirroring the teacher's
// cmd/dwscript/cmd package, adapted to this language's grammar and exit
// codes.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, overridable by build flags (-ldflags "-X ...").
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes, per SPEC_FULL.md §6: a concrete instance of spec.md's "any
// scheme that distinguishes the three classes is acceptable" clause.
const (
	exitUsage    = 64 // CLI misuse
	exitDataErr  = 65 // scan/parse/resolve (static) error
	exitSoftware = 70 // runtime error
)

// exitCodeError lets a RunE func communicate which of the three exit-code
// classes a failure belongs to, without cobra's own generic non-zero exit.
// reported marks that the underlying diagnostics were already written to
// stderr (e.g. by staticError), so callers must not print err a second time.
type exitCodeError struct {
	code     int
	err      error
	reported bool
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "rune [script]",
	Short: "rune is a tree-walking interpreter for the Rune scripting language",
	Long: `rune is a Go implementation of the Rune language: a small,
dynamically-typed, C-syntax scripting language in the Lox/Rune family,
with closures, lambdas, and single-inheritance classes.

Run with no arguments to start an interactive REPL, or pass a single
script path to execute a file.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: false,
	RunE:         runRootCommand,
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runREPL()
	}
	return runFile(args[0])
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ec *exitCodeError
	if asExitCodeError(err, &ec) {
		if !ec.reported {
			fmt.Fprintln(os.Stderr, ec.err)
		}
		return ec.code
	}

	fmt.Fprintln(os.Stderr, err)
	return exitUsage
}

func asExitCodeError(err error, target **exitCodeError) bool {
	for err != nil {
		if ec, ok := err.(*exitCodeError); ok {
			*target = ec
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
