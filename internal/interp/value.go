package interp

import "strconv"

// isTruthy implements spec.md §4.4: nil and false are falsey, everything
// else (including 0 and "") is truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements spec.md §4.4's equality rule: nil equals only nil,
// two different runtime types are never equal, callables/instances compare
// by identity (Go's == on the underlying pointer does this for free).
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as == bs
	}
	ab, aIsBool := a.(bool)
	bb, bIsBool := b.(bool)
	if aIsBool && bIsBool {
		return ab == bb
	}
	// Callables and *Instance compare by identity: distinct dynamic types
	// never compare equal under Go's ==, and same-type pointers compare by
	// address, matching spec.md's "equality by identity" rule for them.
	return a == b
}

// stringify implements the "display rule" in spec.md §4.4.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(x)
	case string:
		return x
	case *Instance:
		return x.class.Name + " instance"
	case *Class:
		return x.Name + "::class"
	case *Function:
		return "<fn " + x.Declaration.Name.Lexeme + ">"
	case *Lambda:
		return "<fn>"
	case *NativeFunction:
		return "<native func>"
	default:
		return "<unknown>"
	}
}

// formatNumber prints the shortest representation of a float, dropping the
// trailing ".0" when the value is mathematically an integer.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// typeName returns the runtime type tag exposed to user code by the
// `type()` native.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case *Function, *Lambda, *NativeFunction:
		return "function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return "unknown"
	}
}
