package cmd

import (
	"fmt"
	"os"

	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Rune file or expression and print the resulting tokens",
	Long: `Tokenize a Rune program and print the resulting tokens, one per line.

This is useful for debugging the scanner.

Examples:
  rune lex script.rune
  rune lex -e "var x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading a file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return &exitCodeError{code: exitUsage, err: err}
	}

	sink := diagnostics.NewSink()
	tokens := lexer.New(source, sink).ScanTokens()

	for _, tok := range tokens {
		fmt.Println(tok.String())
	}

	if sink.HadError() {
		return staticError(sink)
	}
	return nil
}

// readSource resolves the -e flag vs. a single file argument into source
// text, shared by the run/lex/parse subcommands.
func readSource(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a script path or use -e for inline source")
}
