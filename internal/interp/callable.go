package interp

// Callable is implemented by every runtime value that can appear on the
// left of a call expression: user functions, lambdas, classes (whose call
// constructs an instance) and native functions.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
}
