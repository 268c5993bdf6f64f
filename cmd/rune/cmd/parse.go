package cmd

import (
	"fmt"

	"github.com/shengbojia/rune-interpreter/internal/ast"
	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/lexer"
	"github.com/shengbojia/rune-interpreter/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Rune file or expression and print the resulting syntax tree",
	Long: `Parse a Rune program and print its statement tree in a Lisp-like
parenthesized form.

This is useful for debugging the parser.

Examples:
  rune parse script.rune
  rune parse -e "1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return &exitCodeError{code: exitUsage, err: err}
	}

	sink := diagnostics.NewSink()
	tokens := lexer.New(source, sink).ScanTokens()
	if sink.HadError() {
		return staticError(sink)
	}

	stmts := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		return staticError(sink)
	}

	fmt.Print(ast.Dump(stmts))
	return nil
}
