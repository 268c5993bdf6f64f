package lexer

import (
	"testing"

	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/token"
)

func scanAll(t *testing.T, source string) ([]token.Token, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	toks := New(source, sink).ScanTokens()
	return toks, sink
}

func TestNextToken(t *testing.T) {
	input := `var x = 5;
x = x + 10;
`
	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.VAR, "var"},
		{token.IDENTIFIER, "x"},
		{token.EQUAL, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.IDENTIFIER, "x"},
		{token.EQUAL, "="},
		{token.IDENTIFIER, "x"},
		{token.PLUS, "+"},
		{token.NUMBER, "10"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	toks, sink := scanAll(t, input)
	if sink.HadError() {
		t.Fatalf("unexpected scan errors: %v", sink.Diagnostics())
	}
	if len(toks) != len(tests) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(tests))
	}
	for i, tt := range tests {
		if toks[i].Kind != tt.expectedKind {
			t.Errorf("tokens[%d] - kind wrong. expected=%v, got=%v", i, tt.expectedKind, toks[i].Kind)
		}
		if toks[i].Lexeme != tt.expectedLexeme {
			t.Errorf("tokens[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, toks[i].Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and break class else false fun for if lambda nil or print return super this true var while"
	want := []token.Kind{
		token.AND, token.BREAK, token.CLASS, token.ELSE, token.FALSE, token.FUN,
		token.FOR, token.IF, token.LAMBDA, token.NIL, token.OR, token.PRINT,
		token.RETURN, token.SUPER, token.THIS, token.TRUE, token.VAR, token.WHILE,
	}
	toks, _ := scanAll(t, input)
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token[%d]: expected=%v, got=%v", i, k, toks[i].Kind)
		}
	}
}

func TestCompoundOperators(t *testing.T) {
	toks, _ := scanAll(t, "! != = == > >= < <=")
	want := []token.Kind{token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token[%d]: expected=%v, got=%v", i, k, toks[i].Kind)
		}
	}
}

func TestTernaryTokens(t *testing.T) {
	toks, _ := scanAll(t, "a ? b : c")
	want := []token.Kind{token.IDENTIFIER, token.QUESTION, token.IDENTIFIER, token.COLON, token.IDENTIFIER, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token[%d]: expected=%v, got=%v", i, k, toks[i].Kind)
		}
	}
}

func TestLineCommentIsSkipped(t *testing.T) {
	toks, _ := scanAll(t, "1 // this is a comment\n2")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (1, 2, EOF)", len(toks))
	}
	if toks[1].Line != 2 {
		t.Errorf("second number should be on line 2, got %d", toks[1].Line)
	}
}

func TestBlockCommentDoesNotNest(t *testing.T) {
	// The inner "/*" is plain text inside the outer comment; the first "*/"
	// closes it, leaving a dangling "*/ 2" to scan.
	toks, sink := scanAll(t, "1 /* outer /* inner */ */ 2")
	if sink.HadError() {
		t.Fatalf("unexpected scan errors: %v", sink.Diagnostics())
	}
	// "1", "*", "/", "2", EOF -- the comment closes at the first "*/".
	if toks[0].Kind != token.NUMBER {
		t.Fatalf("expected leading NUMBER token, got %v", toks[0].Kind)
	}
}

func TestMultilineString(t *testing.T) {
	toks, sink := scanAll(t, "\"line one\nline two\"\n1")
	if sink.HadError() {
		t.Fatalf("unexpected scan errors: %v", sink.Diagnostics())
	}
	if toks[0].Kind != token.STRING || toks[0].Literal != "line one\nline two" {
		t.Fatalf("unexpected string token: %+v", toks[0])
	}
	if toks[1].Line != 3 {
		t.Errorf("trailing number should report line 3, got %d", toks[1].Line)
	}
}

func TestUnterminatedStringReportsFinalLine(t *testing.T) {
	_, sink := scanAll(t, "\"abc\ndef\nghi")
	if !sink.HadError() {
		t.Fatal("expected a scan error for unterminated string")
	}
	diags := sink.Diagnostics()
	if diags[0].Line != 3 {
		t.Errorf("expected error at final line 3, got %d", diags[0].Line)
	}
}

func TestNumberDotNotFollowedByDigitDoesNotJoin(t *testing.T) {
	toks, sink := scanAll(t, "140.abs")
	if sink.HadError() {
		t.Fatalf("unexpected scan errors: %v", sink.Diagnostics())
	}
	want := []token.Kind{token.NUMBER, token.DOT, token.IDENTIFIER, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token[%d]: expected=%v, got=%v", i, k, toks[i].Kind)
		}
	}
	if toks[0].Literal != 140.0 {
		t.Errorf("expected number literal 140, got %v", toks[0].Literal)
	}
}

func TestIdentifierStartingWithUnderscore(t *testing.T) {
	toks, sink := scanAll(t, "_private")
	if sink.HadError() {
		t.Fatalf("unexpected scan errors: %v", sink.Diagnostics())
	}
	if toks[0].Kind != token.IDENTIFIER || toks[0].Lexeme != "_private" {
		t.Fatalf("unexpected token: %+v", toks[0])
	}
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	toks, sink := scanAll(t, "1 @ 2")
	if !sink.HadError() {
		t.Fatal("expected a scan error for '@'")
	}
	if len(toks) != 3 {
		t.Fatalf("scanning should continue past the bad character: got %d tokens", len(toks))
	}
}
