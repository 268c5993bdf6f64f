package interp

import (
	"time"

	"github.com/shengbojia/rune-interpreter/internal/diagnostics"
)

// NativeFunction wraps a Go function as a Callable, per spec.md §3's
// "native function" Callable variant.
type NativeFunction struct {
	name    string
	fn      func(in *Interpreter, args []any) (any, error)
	fnArity int
}

// Arity is the native function's fixed declared arity.
func (n *NativeFunction) Arity() int { return n.fnArity }

// Call dispatches to the wrapped Go function.
func (n *NativeFunction) Call(in *Interpreter, args []any) (any, error) {
	return n.fn(in, args)
}

// defineGlobals installs the native standard library described in
// SPEC_FULL.md §4.4 ("native function surface") into env. Grounded on
// archevan-glox/natives.go's clock() for the shape of a native Callable,
// extended with str/len/type so user programs have enough to exercise the
// stringify/equality/type rules without a host-provided library.
func defineGlobals(env *Environment) {
	env.Define("clock", &NativeFunction{
		name:    "clock",
		fnArity: 0,
		fn: func(_ *Interpreter, _ []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	env.Define("str", &NativeFunction{
		name:    "str",
		fnArity: 1,
		fn: func(_ *Interpreter, args []any) (any, error) {
			return stringify(args[0]), nil
		},
	})

	env.Define("len", &NativeFunction{
		name:    "len",
		fnArity: 1,
		fn: func(_ *Interpreter, args []any) (any, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, &diagnostics.RuntimeError{Message: "Argument to 'len' must be a string."}
			}
			return float64(len(s)), nil
		},
	})

	env.Define("type", &NativeFunction{
		name:    "type",
		fnArity: 1,
		fn: func(_ *Interpreter, args []any) (any, error) {
			return typeName(args[0]), nil
		},
	})
}
