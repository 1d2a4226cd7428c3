package pego

import "github.com/chronos-tachyon/pego/value"

// matchNested runs body against a fresh InputStream built from atoms,
// requiring it to consume every one of them. Used by Arr and Obj to
// descend into a structural atom's contents without disturbing the
// enclosing stream beyond consuming the one atom that was unwrapped.
func matchNested(s *EvalState, atoms []value.Value, body Expr) bool {
	nested := NewArrayInputStream(atoms)
	s.pushStream(nested)
	ok := Eval(body, s)
	if ok && !nested.AtEnd() {
		ok = false
	}
	s.popStream()
	return ok
}

// --- ArrExpr ---

// ArrExpr matches one atom that is itself a KindArray Value, then matches
// Body against that array's elements as a nested stream, requiring Body
// to consume every element. Arity equals Body's arity: the array atom
// itself contributes no Node of its own, only whatever Body captures
// inside it.
type ArrExpr struct {
	Body Expr
}

func (e *ArrExpr) Arity() int { return e.Body.Arity() }
func (*ArrExpr) isExpr()      {}

func (e *ArrExpr) eval(s *EvalState) bool {
	start := s.pos()
	v, ok := s.stream().Peek()
	if !ok || v.Kind() != value.KindArray {
		s.recordFailure(start, "array")
		return false
	}
	items, _ := v.AsArray()
	if !matchNested(s, items, e.Body) {
		s.recordFailure(start, "array matching "+exprDescription(e.Body))
		return false
	}
	s.stream().Next()
	return true
}

// --- StrExpr ---

// StrExpr matches one atom that is itself a KindString Value, then
// matches Body against that string's code points as a nested stream,
// requiring Body to consume the whole string. Arity equals Body's.
type StrExpr struct {
	Body Expr
}

func (e *StrExpr) Arity() int { return e.Body.Arity() }
func (*StrExpr) isExpr()      {}

func (e *StrExpr) eval(s *EvalState) bool {
	start := s.pos()
	v, ok := s.stream().Peek()
	if !ok || v.Kind() != value.KindString {
		s.recordFailure(start, "string")
		return false
	}
	str, _ := v.AsString()
	nested := NewStringInputStream(str)
	s.pushStream(nested)
	matched := Eval(e.Body, s)
	if matched && !nested.AtEnd() {
		matched = false
	}
	s.popStream()
	if !matched {
		s.recordFailure(start, "string matching "+exprDescription(e.Body))
		return false
	}
	s.stream().Next()
	return true
}

// --- ObjExpr ---

// ObjProp is one named property pattern inside an ObjExpr: Body is matched
// against the single value stored at Name.
type ObjProp struct {
	Name string
	Body Expr
}

// ObjExpr matches one atom that is itself a KindObject Value whose own
// properties satisfy every entry in Props. In strict mode (Lenient ==
// false) any object property not named in Props makes the match fail;
// in lenient mode extra properties are ignored and, on success, the
// object with every matched property removed (value.Value.Without) is
// bound as a single trailing Node — the conventional way a lenient object
// pattern lets its caller see what else was present.
//
// Arity is 1 when Lenient, 0 otherwise.
type ObjExpr struct {
	Props   []ObjProp
	Lenient bool
}

func (e *ObjExpr) Arity() int {
	if e.Lenient {
		return 1
	}
	return 0
}
func (*ObjExpr) isExpr() {}

func (e *ObjExpr) eval(s *EvalState) bool {
	start := s.pos()
	v, ok := s.stream().Peek()
	if !ok || v.Kind() != value.KindObject {
		s.recordFailure(start, "object")
		return false
	}

	if !e.Lenient && v.NumOwnProperties() != len(e.Props) {
		s.recordFailure(start, "object with exactly the matched properties")
		return false
	}

	matchedNames := make([]string, 0, len(e.Props))
	for _, prop := range e.Props {
		if !v.HasOwnProperty(prop.Name) {
			s.recordFailure(start, "property "+prop.Name)
			return false
		}
		obj, _ := v.AsObject()
		propVal := obj[prop.Name]
		beforeProp := s.numBindings()
		if !matchNested(s, []value.Value{propVal}, prop.Body) {
			s.recordFailure(start, "property "+prop.Name+" matching "+exprDescription(prop.Body))
			return false
		}
		s.truncateBindings(beforeProp)
		matchedNames = append(matchedNames, prop.Name)
	}

	s.stream().Next()
	if e.Lenient {
		rest := v.Without(matchedNames...)
		s.pushBinding(NewTerminalNode(rest, s.stream().Interval(start)))
	}
	return true
}

// exprDescription renders a short human-readable label for use in failure
// messages naming a sub-expression; it is intentionally coarse (the type
// name) rather than a full pretty-printer.
func exprDescription(e Expr) string {
	switch e.(type) {
	case *Anything:
		return "anything"
	case *End:
		return "end"
	case *Apply:
		return "rule application"
	default:
		return "expression"
	}
}
