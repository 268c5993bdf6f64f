package cmd

import (
	"fmt"
	"os"

	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/interp"
	"github.com/shengbojia/rune-interpreter/internal/lexer"
	"github.com/shengbojia/rune-interpreter/internal/parser"
	"github.com/shengbojia/rune-interpreter/internal/resolver"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Rune script file or inline expression",
	Long: `Execute a Rune program from a file or inline source.

Examples:
  rune run script.rune
  rune run -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return &exitCodeError{code: exitUsage, err: err}
	}

	interpreter := interp.New(os.Stdout)
	return runSource(source, interpreter)
}

// runFile is the root command's bare `rune script.rune` shorthand for
// `rune run script.rune`.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &exitCodeError{code: exitUsage, err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	return runSource(string(content), interp.New(os.Stdout))
}

// runSource drives the full scan → parse → resolve → evaluate pipeline
// described in spec.md §7, reporting diagnostics to stderr and returning
// an exitCodeError that maps them to the 64/65/70 scheme.
func runSource(source string, interpreter *interp.Interpreter) error {
	sink := diagnostics.NewSink()

	lex := lexer.New(source, sink)
	tokens := lex.ScanTokens()
	if sink.HadError() {
		return staticError(sink)
	}

	p := parser.New(tokens, sink)
	stmts := p.Parse()
	if sink.HadError() {
		return staticError(sink)
	}

	res := resolver.New(sink)
	table := res.Resolve(stmts)
	if sink.HadError() {
		return staticError(sink)
	}

	if err := interpreter.Interpret(stmts, table); err != nil {
		return &exitCodeError{code: exitSoftware, err: err}
	}
	return nil
}

// staticError flushes sink's diagnostics to stderr in spec.md §6's exact
// wire format and returns an exitCodeError marked reported, so callers
// don't print the summary error a second time.
func staticError(sink *diagnostics.Sink) error {
	diags := sink.Diagnostics()
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	return &exitCodeError{
		code:     exitDataErr,
		err:      fmt.Errorf("%d static error(s)", len(diags)),
		reported: true,
	}
}
