package interp

import "github.com/shengbojia/rune-interpreter/internal/diagnostics"

// Environment is a single lexical scope: a binding map plus an optional
// link to the enclosing scope, per spec.md §3. Environments form a DAG at
// runtime — a closure's captured environment may be shared by many call
// frames — so Go's garbage collector, not manual bookkeeping, owns their
// lifetime; cycles (a class method capturing the environment that defines
// the class) are tolerated rather than avoided.
type Environment struct {
	enclosing *Environment
	values    map[string]any
}

// NewEnvironment returns a fresh environment enclosed by parent (nil for
// the global environment).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, values: make(map[string]any)}
}

// Define binds name to value in this environment, overwriting any existing
// binding. Used both for `var` declarations and for global redefinition,
// which spec.md §3 explicitly permits.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks up name by walking the enclosing chain outward, used for
// unresolved (global) references.
func (e *Environment) Get(name string, line int) (any, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name, line)
	}
	return nil, &diagnostics.RuntimeError{Line: line, Message: "Undefined variable '" + name + "'."}
}

// Assign rebinds name to value by walking the enclosing chain outward,
// used for unresolved (global) assignment targets.
func (e *Environment) Assign(name string, value any, line int) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value, line)
	}
	return &diagnostics.RuntimeError{Line: line, Message: "Undefined variable '" + name + "'."}
}

// ancestor walks up to depth enclosing links outward. The resolver
// guarantees depth is in range for every ordinary (function/method/block)
// reference; it stops early at the outermost environment rather than
// following a nil link, which only matters for the documented lambda
// quirk (spec.md §9) where a lambda's captured chain is shorter than the
// depth the resolver computed against its lexical nesting.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth && env.enclosing != nil; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly from the environment depth links away, per the
// resolver's recorded scope depth.
func (e *Environment) GetAt(depth int, name string) any {
	return e.ancestor(depth).values[name]
}

// AssignAt writes name directly into the environment depth links away.
func (e *Environment) AssignAt(depth int, name string, value any) {
	e.ancestor(depth).values[name] = value
}
