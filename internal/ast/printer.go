package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a statement list as a Lisp-style s-expression tree, used by
// the `rune parse` debug subcommand. Grounded on the classic
// parenthesized-prefix AST printer (archevan-glox/ast_printer.go), extended
// to cover statements as well as expressions.
func Dump(stmts []Stmt) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(printStmt(s))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *Block:
		parts := make([]string, len(n.Stmts))
		for i, st := range n.Stmts {
			parts[i] = printStmt(st)
		}
		return parenthesize("block", parts...)
	case *Class:
		var sb strings.Builder
		sb.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			sb.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			sb.WriteString(" " + printStmt(m))
		}
		for _, m := range n.ClassMethods {
			sb.WriteString(" class " + printStmt(m))
		}
		sb.WriteByte(')')
		return sb.String()
	case *Expression:
		return parenthesize(";", printExpr(n.Expression))
	case *Function:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		body := make([]string, len(n.Body))
		for i, st := range n.Body {
			body[i] = printStmt(st)
		}
		return fmt.Sprintf("(fun %s (%s) %s)", n.Name.Lexeme, strings.Join(params, " "), strings.Join(body, " "))
	case *If:
		if n.ElseBranch != nil {
			return parenthesize("if", printExpr(n.Condition), printStmt(n.ThenBranch), printStmt(n.ElseBranch))
		}
		return parenthesize("if", printExpr(n.Condition), printStmt(n.ThenBranch))
	case *Print:
		return parenthesize("print", printExpr(n.Expression))
	case *Return:
		if n.Value != nil {
			return parenthesize("return", printExpr(n.Value))
		}
		return "(return)"
	case *Break:
		return "(break)"
	case *Var:
		if n.Initializer != nil {
			return parenthesize("var "+n.Name.Lexeme, printExpr(n.Initializer))
		}
		return "(var " + n.Name.Lexeme + ")"
	case *While:
		return parenthesize("while", printExpr(n.Condition), printStmt(n.Body))
	default:
		return fmt.Sprintf("(unknown-stmt %T)", s)
	}
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, printExpr(n.Value))
	case *Binary:
		return parenthesize(n.Op.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Logical:
		return parenthesize(n.Op.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Unary:
		return parenthesize(n.Op.Lexeme, printExpr(n.Right))
	case *Ternary:
		return parenthesize("?:", printExpr(n.Left), printExpr(n.Then), printExpr(n.Else))
	case *Grouping:
		return parenthesize("group", printExpr(n.Expression))
	case *Literal:
		return literalString(n.Value)
	case *Variable:
		return n.Name.Lexeme
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = printExpr(a)
		}
		return parenthesize("call "+printExpr(n.Callee), args...)
	case *Get:
		return parenthesize("get "+n.Name.Lexeme, printExpr(n.Object))
	case *Set:
		return parenthesize("set "+n.Name.Lexeme, printExpr(n.Object), printExpr(n.Value))
	case *This:
		return "this"
	case *Lambda:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		body := make([]string, len(n.Body))
		for i, st := range n.Body {
			body[i] = printStmt(st)
		}
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(params, " "), strings.Join(body, " "))
	default:
		return fmt.Sprintf("(unknown-expr %T)", e)
	}
}

func literalString(v any) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func parenthesize(name string, parts ...string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, p := range parts {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}
	sb.WriteByte(')')
	return sb.String()
}
