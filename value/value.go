package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the four shapes a Value can take.
type Kind uint8

const (
	KindAtom Kind = iota
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a single dynamic-shape input atom. The zero Value is the atom
// nil.
type Value struct {
	kind Kind
	atom interface{}
	str  string
	arr  []Value
	obj  map[string]Value
}

// Atom wraps a primitive (rune, float64, int, bool, string, or nil) with no
// further PEG-visible structure.
func Atom(v interface{}) Value {
	return Value{kind: KindAtom, atom: v}
}

// Rune wraps a single code point, as produced by iterating a string
// InputStream one character at a time.
func Rune(r rune) Value {
	return Atom(r)
}

// Str wraps a host string as a single Value (for matching against
// StringPrim, or as the value consumed before entering a nested Str match).
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array wraps an ordered sequence of Values, matched by Arr.
func Array(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: cp}
}

// Object wraps a property bag, matched by Obj. Property order is not
// significant to matching, but PropertyNames() returns names in sorted order
// for deterministic iteration.
func Object(props map[string]Value) Value {
	cp := make(map[string]Value, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return Value{kind: KindObject, obj: cp}
}

// Undefined is the Value bound by the End expression: it carries no
// information, only a position.
func Undefined() Value { return Value{kind: KindAtom, atom: nil} }

// Kind reports which of the four shapes this Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsAtom returns the wrapped primitive and true, or (nil, false) if this
// Value is not a KindAtom.
func (v Value) AsAtom() (interface{}, bool) {
	if v.kind != KindAtom {
		return nil, false
	}
	return v.atom, true
}

// AsRune returns the wrapped code point and true, or (0, false) if this
// Value is not an atom wrapping a rune.
func (v Value) AsRune() (rune, bool) {
	if v.kind != KindAtom {
		return 0, false
	}
	r, ok := v.atom.(rune)
	return r, ok
}

// AsString returns the wrapped string and true, or ("", false) if this
// Value is not a KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsArray returns the wrapped element slice and true, or (nil, false) if
// this Value is not a KindArray. The returned slice must not be mutated.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the wrapped property map and true, or (nil, false) if
// this Value is not a KindObject. The returned map must not be mutated.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// HasOwnProperty reports whether this Value is a KindObject with an own
// property of the given name. Only own properties participate in Obj
// matching: this package models objects as flat Go maps, so every key
// present in the map is, by construction, an own property — there is no
// prototype chain to walk.
func (v Value) HasOwnProperty(name string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[name]
	return ok
}

// NumOwnProperties returns the number of own properties, or 0 if this
// Value is not a KindObject.
func (v Value) NumOwnProperties() int {
	if v.kind != KindObject {
		return 0
	}
	return len(v.obj)
}

// PropertyNames returns the object's own property names in sorted order.
func (v Value) PropertyNames() []string {
	if v.kind != KindObject {
		return nil
	}
	names := make([]string, 0, len(v.obj))
	for k := range v.obj {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Without returns a copy of this object Value with the named properties
// removed. Used by Obj's lenient branch to bind the remainder.
func (v Value) Without(names ...string) Value {
	if v.kind != KindObject {
		return v
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make(map[string]Value, len(v.obj))
	for k, sub := range v.obj {
		if !drop[k] {
			out[k] = sub
		}
	}
	return Object(out)
}

// String renders a debugging representation of the Value.
func (v Value) String() string {
	switch v.kind {
	case KindAtom:
		if v.atom == nil {
			return "undefined"
		}
		if r, ok := v.atom.(rune); ok {
			return fmt.Sprintf("%q", r)
		}
		return fmt.Sprintf("%v", v.atom)
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		names := v.PropertyNames()
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = n + ": " + v.obj[n].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "<invalid Value>"
}

// Equal reports whether two Values are the same shape with equal contents.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAtom:
		return a.atom == b.atom
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
