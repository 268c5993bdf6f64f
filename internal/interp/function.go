package interp

import "github.com/shengbojia/rune-interpreter/internal/ast"

// Function is a user-defined function or method: its declaration plus the
// environment captured at the point of declaration, per spec.md §3.
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

// NewFunction wraps a function/method declaration as a callable closure.
func NewFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

// Arity is the declared parameter count.
func (f *Function) Arity() int { return len(f.Declaration.Params) }

// Call binds parameters to args in a fresh environment enclosing the
// closure, executes the body, and returns the function's result: the
// argument of a `return`, or nil if execution falls off the end. An
// initializer always yields the bound `this` instance instead, per
// spec.md §4.4.
func (f *Function) Call(in *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.Declaration.Body, env)
	if _, ok := err.(returnSignal); !ok && err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, nil
}

// Bind returns a copy of this method whose closure additionally defines
// `this` as instance, per spec.md §4.4's method-binding rule. The bound
// closure is a fresh, single-entry environment enclosing the method's
// original captured environment — cheap to recreate on every property
// access and not memoized, per spec.md §5.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return NewFunction(f.Declaration, env, f.IsInitializer)
}

// Lambda is an anonymous function literal. Per spec.md §9's documented
// lambda-closure quirk, its captured environment is always the
// interpreter's global environment at the time the lambda expression is
// evaluated — not the lexically enclosing local scope, unlike Function.
type Lambda struct {
	Declaration *ast.Lambda
	Closure     *Environment
}

// NewLambda wraps a lambda literal together with the (global) environment
// captured at evaluation time.
func NewLambda(decl *ast.Lambda, closure *Environment) *Lambda {
	return &Lambda{Declaration: decl, Closure: closure}
}

// Arity is the declared parameter count.
func (l *Lambda) Arity() int { return len(l.Declaration.Params) }

// Call behaves exactly like Function.Call, sans the initializer case.
func (l *Lambda) Call(in *Interpreter, args []any) (any, error) {
	env := NewEnvironment(l.Closure)
	for i, param := range l.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	err := in.executeBlock(l.Declaration.Body, env)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}
