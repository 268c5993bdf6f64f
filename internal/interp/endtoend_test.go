package interp_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/interp"
	"github.com/shengbojia/rune-interpreter/internal/lexer"
	"github.com/shengbojia/rune-interpreter/internal/parser"
	"github.com/shengbojia/rune-interpreter/internal/resolver"
)

// run drives the full scan → parse → resolve → evaluate pipeline over
// source and returns its stdout, failing the test on any static error.
func run(t *testing.T, source string) string {
	t.Helper()

	sink := diagnostics.NewSink()
	tokens := lexer.New(source, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	if sink.HadError() {
		t.Fatalf("unexpected static error(s) for %q: %v", source, sink.Diagnostics())
	}

	table := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		t.Fatalf("unexpected resolver error(s) for %q: %v", source, sink.Diagnostics())
	}

	var out bytes.Buffer
	in := interp.New(&out)
	if err := in.Interpret(stmts, table); err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", source, err)
	}
	return out.String()
}

// TestEndToEndScenarios covers the literal input/output pairs spec.md §8
// enumerates.
func TestEndToEndScenarios(t *testing.T) {
	tests := map[string]string{
		"hello world": `print "Hello, world.";`,
		"precedence":  `print 1 + 2 * 3;`,
		"block shadowing": `
var a = 1;
{
  var a = 2;
  print a;
}
print a;`,
		"closure counter": `
fun make() {
  var i = 0;
  fun inc() {
    i = i + 1;
    return i;
  }
  return inc;
}
var c = make();
print c();
print c();
print c();`,
		"instance method reads field": `
class A {
  greet() {
    print "hi " + this.name;
  }
}
var a = A();
a.name = "x";
a.greet();`,
		"single inheritance": `
class A {
  init(n) {
    this.n = n;
  }
}
class B < A {
  show() {
    print this.n;
  }
}
var b = B(7);
b.show();`,
		"string plus number coerces to concatenation": `print "a" + 1;`,
	}

	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			snaps.MatchSnapshot(t, run(t, source))
		})
	}
}

// TestEndToEndRuntimeErrors covers the runtime-error half of spec.md §8's
// scenario 7: these never reach a print, so they're asserted on the error
// text rather than stdout.
func TestEndToEndRuntimeErrors(t *testing.T) {
	tests := map[string]struct {
		source  string
		wantMsg string
	}{
		"division by zero": {
			source:  `print 1 / 0;`,
			wantMsg: "Cannot divide by zero.",
		},
		"undeclared variable": {
			source:  `print x;`,
			wantMsg: "Undefined variable 'x'.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sink := diagnostics.NewSink()
			tokens := lexer.New(tt.source, sink).ScanTokens()
			stmts := parser.New(tokens, sink).Parse()
			if sink.HadError() {
				t.Fatalf("unexpected static error(s): %v", sink.Diagnostics())
			}
			table := resolver.New(sink).Resolve(stmts)
			if sink.HadError() {
				t.Fatalf("unexpected resolver error(s): %v", sink.Diagnostics())
			}

			var out bytes.Buffer
			err := interp.New(&out).Interpret(stmts, table)
			if err == nil {
				t.Fatalf("expected a runtime error, got none (stdout: %q)", out.String())
			}
			if got := err.Error(); got != tt.wantMsg+"\n[line 1]" {
				t.Errorf("error = %q, want %q", got, tt.wantMsg+"\n[line 1]")
			}
		})
	}
}

// TestBoundaryBehaviors covers the boundary behaviors spec.md §8 calls out:
// integral numbers print without a trailing ".0", multiline string
// literals, non-nesting block comments, and underscore-led identifiers.
func TestBoundaryBehaviors(t *testing.T) {
	tests := map[string]string{
		"integral number prints without trailing .0": `print 6.0 / 2.0;`,
		"fractional number keeps its decimal": `print 1 / 4;`,
		"multiline string literal": "print \"line one\nline two\";",
		"block comment does not nest": `
/* outer /* inner */
print "reached";`,
		"underscore-led identifier": `var _secret = 42; print _secret;`,
	}

	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			snaps.MatchSnapshot(t, run(t, source))
		})
	}
}
