// Package interp implements the tree-walking evaluator described in
// spec.md §4.4: post-order expression evaluation against a chain of lexical
// environments, statements executed for side effects, runtime errors and
// `return`/`break` modeled as non-local control-flow signals distinct from
// ordinary Go errors.
package interp

import (
	"fmt"
	"io"

	"github.com/shengbojia/rune-interpreter/internal/ast"
	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
	"github.com/shengbojia/rune-interpreter/internal/resolver"
	"github.com/shengbojia/rune-interpreter/internal/token"
)

// Interpreter walks a resolved statement list, producing output on out and
// reporting the first runtime error it encounters.
type Interpreter struct {
	globals *Environment
	env     *Environment
	table   resolver.Table
	out     io.Writer
}

// New returns an Interpreter whose `print` statements write to out, with
// the native standard library already installed in the global environment.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineGlobals(globals)
	return &Interpreter{globals: globals, env: globals, out: out}
}

// Interpret executes stmts against table (the resolver's scope-depth
// side-table). It returns the first runtime error raised; `return` and
// `break` signals escaping all the way to this top level indicate a
// resolver bug per spec.md §7, not a language-level error, and are
// reported as such rather than silently swallowed.
func (in *Interpreter) Interpret(stmts []ast.Stmt, table resolver.Table) error {
	in.table = table
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			switch err.(type) {
			case returnSignal, breakSignal:
				return fmt.Errorf("internal error: %w escaped to top level", err)
			default:
				return err
			}
		}
	}
	return nil
}

// --- statements --------------------------------------------------------

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(n.Stmts, NewEnvironment(in.env))
	case *ast.Class:
		return in.executeClass(n)
	case *ast.Expression:
		_, err := in.evaluate(n.Expression)
		return err
	case *ast.Function:
		fn := NewFunction(n, in.env, false)
		in.env.Define(n.Name.Lexeme, fn)
		return nil
	case *ast.If:
		cond, err := in.evaluate(n.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(n.ThenBranch)
		}
		if n.ElseBranch != nil {
			return in.execute(n.ElseBranch)
		}
		return nil
	case *ast.Print:
		v, err := in.evaluate(n.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, stringify(v))
		return nil
	case *ast.Return:
		var value any
		if n.Value != nil {
			v, err := in.evaluate(n.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *ast.Break:
		return breakSignal{}
	case *ast.Var:
		var value any
		if n.Initializer != nil {
			v, err := in.evaluate(n.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.While:
		for {
			cond, err := in.evaluate(n.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(n.Body); err != nil {
				if _, ok := err.(breakSignal); ok {
					return nil
				}
				return err
			}
		}
	default:
		return fmt.Errorf("internal error: unhandled statement type %T", stmt)
	}
}

// executeBlock runs stmts in a fresh environment, restoring the previous
// environment on every exit path (normal, signal, or error), per spec.md §5.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(n *ast.Class) error {
	var superclass *Class
	if n.Superclass != nil {
		v, err := in.evaluate(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &diagnostics.RuntimeError{Line: n.Superclass.Name.Line, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(n.Name.Lexeme, nil)

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, in.env, m.Name.Lexeme == "init")
	}
	classMethods := make(map[string]*Function, len(n.ClassMethods))
	for _, m := range n.ClassMethods {
		classMethods[m.Name.Lexeme] = NewFunction(m, in.env, false)
	}

	class := NewClass(n.Name.Lexeme, superclass, methods, classMethods)
	return in.env.Assign(n.Name.Lexeme, class, n.Name.Line)
}

// --- expressions -----------------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Grouping:
		return in.evaluate(n.Expression)
	case *ast.Unary:
		return in.evalUnary(n)
	case *ast.Binary:
		return in.evalBinary(n)
	case *ast.Logical:
		return in.evalLogical(n)
	case *ast.Ternary:
		return in.evalTernary(n)
	case *ast.Variable:
		return in.lookupVariable(n.Name, n.ID())
	case *ast.Assign:
		return in.evalAssign(n)
	case *ast.Call:
		return in.evalCall(n)
	case *ast.Get:
		return in.evalGet(n)
	case *ast.Set:
		return in.evalSet(n)
	case *ast.This:
		return in.lookupVariable(n.Keyword, n.ID())
	case *ast.Lambda:
		return NewLambda(n, in.globals), nil
	default:
		return nil, fmt.Errorf("internal error: unhandled expression type %T", expr)
	}
}

func (in *Interpreter) lookupVariable(name token.Token, id ast.NodeID) (any, error) {
	if depth, ok := in.table[id]; ok {
		return in.env.GetAt(depth, name.Lexeme), nil
	}
	return in.globals.Get(name.Lexeme, name.Line)
}

func (in *Interpreter) evalAssign(n *ast.Assign) (any, error) {
	value, err := in.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.table[n.ID()]; ok {
		in.env.AssignAt(depth, n.Name.Lexeme, value)
		return value, nil
	}
	if err := in.globals.Assign(n.Name.Lexeme, value, n.Name.Line); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) evalUnary(n *ast.Unary) (any, error) {
	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: n.Op.Line, Message: "Operand must be a number."}
		}
		return -num, nil
	case token.BANG:
		return !isTruthy(right), nil
	default:
		return nil, fmt.Errorf("internal error: unhandled unary operator %v", n.Op.Kind)
	}
}

func (in *Interpreter) evalLogical(n *ast.Logical) (any, error) {
	left, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op.Kind == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(n.Right)
}

func (in *Interpreter) evalTernary(n *ast.Ternary) (any, error) {
	cond, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.evaluate(n.Then)
	}
	return in.evaluate(n.Else)
}

func (in *Interpreter) evalBinary(n *ast.Binary) (any, error) {
	left, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}

	// The comma operator evaluates and discards its left operand without
	// ever needing it to be numeric, so it is handled before the right
	// operand (and the other operators) are evaluated.
	if n.Op.Kind == token.COMMA {
		return in.evaluate(n.Right)
	}

	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		return evalPlus(left, right, n.Op.Line)
	case token.MINUS:
		return numericBinary(left, right, n.Op.Line, func(a, b float64) any { return a - b })
	case token.STAR:
		return numericBinary(left, right, n.Op.Line, func(a, b float64) any { return a * b })
	case token.SLASH:
		l, lok := left.(float64)
		r, rok := right.(float64)
		if !lok || !rok {
			return nil, &diagnostics.RuntimeError{Line: n.Op.Line, Message: "Operands must be numbers."}
		}
		if r == 0 {
			return nil, &diagnostics.RuntimeError{Line: n.Op.Line, Message: "Cannot divide by zero."}
		}
		return l / r, nil
	case token.GREATER:
		return numericCompare(left, right, n.Op.Line, func(a, b float64) bool { return a > b })
	case token.GREATER_EQUAL:
		return numericCompare(left, right, n.Op.Line, func(a, b float64) bool { return a >= b })
	case token.LESS:
		return numericCompare(left, right, n.Op.Line, func(a, b float64) bool { return a < b })
	case token.LESS_EQUAL:
		return numericCompare(left, right, n.Op.Line, func(a, b float64) bool { return a <= b })
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	default:
		return nil, fmt.Errorf("internal error: unhandled binary operator %v", n.Op.Kind)
	}
}

func evalPlus(left, right any, line int) (any, error) {
	ln, lIsNum := left.(float64)
	rn, rIsNum := right.(float64)
	if lIsNum && rIsNum {
		return ln + rn, nil
	}
	_, lIsStr := left.(string)
	_, rIsStr := right.(string)
	if lIsStr || rIsStr {
		return stringify(left) + stringify(right), nil
	}
	return nil, &diagnostics.RuntimeError{Line: line, Message: "Operands must both be numbers or one of them a string."}
}

func numericBinary(left, right any, line int, f func(a, b float64) any) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, &diagnostics.RuntimeError{Line: line, Message: "Operands must be numbers."}
	}
	return f(l, r), nil
}

func numericCompare(left, right any, line int, f func(a, b float64) bool) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, &diagnostics.RuntimeError{Line: line, Message: "Operands must be numbers."}
	}
	return f(l, r), nil
}

func (in *Interpreter) evalCall(n *ast.Call) (any, error) {
	callee, err := in.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &diagnostics.RuntimeError{Line: n.ClosingParen.Line, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &diagnostics.RuntimeError{
			Line:    n.ClosingParen.Line,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}

	result, err := callable.Call(in, args)
	if rerr, ok := err.(*diagnostics.RuntimeError); ok && rerr.Line == 0 {
		rerr.Line = n.ClosingParen.Line
	}
	return result, err
}

func (in *Interpreter) evalGet(n *ast.Get) (any, error) {
	object, err := in.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case *Instance:
		return obj.Get(n.Name.Lexeme, n.Name.Line)
	case *Class:
		return obj.GetClassMethod(n.Name.Lexeme, n.Name.Line)
	default:
		return nil, &diagnostics.RuntimeError{Line: n.Name.Line, Message: "Only instances have fields."}
	}
}

func (in *Interpreter) evalSet(n *ast.Set) (any, error) {
	object, err := in.evaluate(n.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, &diagnostics.RuntimeError{Line: n.Name.Line, Message: "Only instances have fields."}
	}
	value, err := in.evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name.Lexeme, value)
	return value, nil
}
