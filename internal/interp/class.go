package interp

import "github.com/shengbojia/rune-interpreter/internal/diagnostics"

// Class is a runtime class value: a name, an optional superclass, and the
// instance-method / class-method tables, per spec.md §3.
type Class struct {
	Name         string
	Superclass   *Class
	Methods      map[string]*Function
	ClassMethods map[string]*Function
}

// NewClass constructs a class value with the given method tables.
func NewClass(name string, superclass *Class, methods, classMethods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods, ClassMethods: classMethods}
}

// findMethod looks up an instance method by name, walking the superclass
// chain, per spec.md §4.4.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// findClassMethod looks up a class (static) method by name, walking the
// superclass chain of classes, per spec.md §4.4's class-method lookup rule.
func (c *Class) findClassMethod(name string) (*Function, bool) {
	if m, ok := c.ClassMethods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findClassMethod(name)
	}
	return nil, false
}

// Arity is the arity of the `init` method, or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running `init` (if declared) against it.
func (c *Class) Call(in *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// GetClassMethod resolves a static-method property access on the class
// value itself, per spec.md §4.4: "a class is itself instance-like w.r.t.
// class methods." The method is returned bound to c: its closure gains a
// single-entry environment defining `this` as the class, matching the
// `this` scope the resolver places around class-method bodies.
func (c *Class) GetClassMethod(name string, line int) (*Function, error) {
	if m, ok := c.findClassMethod(name); ok {
		env := NewEnvironment(m.Closure)
		env.Define("this", c)
		return NewFunction(m.Declaration, env, false), nil
	}
	return nil, &diagnostics.RuntimeError{Line: line, Message: "No such static method found: " + name + "."}
}

// Instance is a runtime object: a reference to its class and a mutable
// field map that may shadow methods, per spec.md §3.
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance allocates a fresh, field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Get implements property access: fields shadow methods, per spec.md §4.4.
func (i *Instance) Get(name string, line int) (any, error) {
	if v, ok := i.fields[name]; ok {
		return v, nil
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.Bind(i), nil
	}
	return nil, &diagnostics.RuntimeError{Line: line, Message: "No such property found: '" + name + "'."}
}

// Set implements direct field assignment, creating the field if absent.
func (i *Instance) Set(name string, value any) {
	i.fields[name] = value
}
