package ast

import (
	"testing"

	"github.com/shengbojia/rune-interpreter/internal/token"
)

func TestNodeIDsAreUniqueAndMonotonic(t *testing.T) {
	a := NewLiteral(1.0)
	b := NewLiteral(2.0)
	c := NewLiteral(3.0)

	if a.ID() == b.ID() || b.ID() == c.ID() || a.ID() == c.ID() {
		t.Fatalf("expected distinct NodeIDs, got %d, %d, %d", a.ID(), b.ID(), c.ID())
	}
	if !(a.ID() < b.ID() && b.ID() < c.ID()) {
		t.Errorf("expected monotonically increasing NodeIDs, got %d, %d, %d", a.ID(), b.ID(), c.ID())
	}
}

func TestVariableAndAssignShareNoID(t *testing.T) {
	name := token.Token{Kind: token.IDENTIFIER, Lexeme: "x", Line: 1}
	v := NewVariable(name)
	assign := NewAssign(name, NewLiteral(nil))

	if v.ID() == assign.ID() {
		t.Errorf("Variable and Assign built from the same token unexpectedly share a NodeID")
	}
}

func TestPrintLiteral(t *testing.T) {
	stmts := []Stmt{
		&Print{Expression: NewLiteral(1.0)},
	}
	got := Dump(stmts)
	want := "(print 1)\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestPrintBinaryExpression(t *testing.T) {
	plus := token.Token{Kind: token.PLUS, Lexeme: "+", Line: 1}
	expr := NewBinary(NewLiteral(1.0), plus, NewLiteral(2.0))
	stmts := []Stmt{&Expression{Expression: expr}}

	got := Dump(stmts)
	want := "(; (+ 1 2))\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestPrintVarDeclarationWithoutInitializer(t *testing.T) {
	name := token.Token{Kind: token.IDENTIFIER, Lexeme: "a", Line: 1}
	stmts := []Stmt{&Var{Name: name}}

	got := Dump(stmts)
	want := "(var a)\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestPrintClassWithSuperclass(t *testing.T) {
	className := token.Token{Kind: token.IDENTIFIER, Lexeme: "B", Line: 1}
	superName := token.Token{Kind: token.IDENTIFIER, Lexeme: "A", Line: 1}
	stmts := []Stmt{
		&Class{Name: className, Superclass: NewVariable(superName)},
	}

	got := Dump(stmts)
	want := "(class B < A)\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
