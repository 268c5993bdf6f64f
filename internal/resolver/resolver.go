// Package resolver implements the static pass described in spec.md §4.3: a
// single walk over the statement list that fixes every variable and `this`
// reference to a lexical scope depth, and rejects the statically-checkable
// errors spec.md enumerates (self-reference in initializer, duplicate
// local, return/break/this out of context, value-returning initializer,
// class self-inheritance).
package resolver

import (
	"github.com/shengbojia/rune-interpreter/internal/ast"
	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/token"
)

// functionKind tracks what kind of callable body is currently being
// resolved, mirroring spec.md §4.3's currentFunction state machine.
type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInit
	fnMethod
	fnClassMethod
)

// classKind tracks whether a class declaration is currently being resolved.
type classKind int

const (
	classNone classKind = iota
	classInClass
)

// Table is the resolver's output: every resolved expression node's scope
// depth, keyed by NodeID. Absence of an entry means "global" per spec.md §3.
type Table map[ast.NodeID]int

// Resolver performs the static scope-depth resolution pass.
type Resolver struct {
	sink   *diagnostics.Sink
	table  Table
	scopes []map[string]bool

	currentFunction functionKind
	currentClass    classKind
	inALoop         bool
}

// New returns a Resolver that reports static errors to sink.
func New(sink *diagnostics.Sink) *Resolver {
	return &Resolver{sink: sink, table: make(Table)}
}

// Resolve walks the full statement list and returns the resulting depth
// table. Callers should check the sink for errors before evaluating.
func (r *Resolver) Resolve(stmts []ast.Stmt) Table {
	r.resolveStmts(stmts)
	return r.table
}

// --- scope stack -----------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.ReportAt(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(id ast.NodeID, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.table[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any local scope: treat as global, no table entry.
}

// --- statements ------------------------------------------------------------

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpr(n.Expression)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, fnFunction)
	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.ThenBranch)
		if n.ElseBranch != nil {
			r.resolveStmt(n.ElseBranch)
		}
	case *ast.Print:
		r.resolveExpr(n.Expression)
	case *ast.Return:
		if r.currentFunction == fnNone {
			r.sink.ReportAt(n.Keyword.Line, " at '"+n.Keyword.Lexeme+"'", "Cannot return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == fnInit {
				r.sink.ReportAt(n.Keyword.Line, " at '"+n.Keyword.Lexeme+"'", "Cannot return a value from an instance initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.Break:
		if !r.inALoop {
			r.sink.ReportAt(n.Keyword.Line, " at '"+n.Keyword.Lexeme+"'", "Cannot use break when not in a loop.")
		}
	case *ast.Var:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)
	case *ast.While:
		r.resolveExpr(n.Condition)
		enclosingLoop := r.inALoop
		r.inALoop = true
		r.resolveStmt(n.Body)
		r.inALoop = enclosingLoop
	}
}

func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classInClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.sink.ReportAt(n.Superclass.Name.Line, " at '"+n.Superclass.Name.Lexeme+"'", "A class cannot inherit from itself.")
		}
		r.resolveExpr(n.Superclass)
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range n.Methods {
		kind := fnMethod
		if m.Name.Lexeme == "init" {
			kind = fnInit
		}
		r.resolveFunction(m, kind)
	}
	for _, m := range n.ClassMethods {
		r.resolveFunction(m, fnClassMethod)
	}

	r.endScope()
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- expressions -----------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Ternary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *ast.Grouping:
		r.resolveExpr(n.Expression)
	case *ast.Literal:
		// nothing to resolve
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.sink.ReportAt(n.Name.Line, " at '"+n.Name.Lexeme+"'", "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n.ID(), n.Name)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.sink.ReportAt(n.Keyword.Line, " at '"+n.Keyword.Lexeme+"'", "Cannot use 'this' outside a class.")
			return
		}
		r.resolveLocal(n.ID(), n.Keyword)
	case *ast.Lambda:
		enclosingFunction := r.currentFunction
		r.currentFunction = fnFunction
		r.beginScope()
		for _, param := range n.Params {
			r.declare(param)
			r.define(param)
		}
		r.resolveStmts(n.Body)
		r.endScope()
		r.currentFunction = enclosingFunction
	}
}
