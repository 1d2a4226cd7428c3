package pego

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/pego/valset"
	"github.com/chronos-tachyon/pego/value"
)

// Expr is the closed family of expression variants that make up a compiled
// rule body. Every variant has a fixed arity (the number of bindings it
// pushes on success) and a single dispatching evaluator, Eval, applies the
// uniform contract to all of them: on success the bindings stack grows by
// exactly Arity() entries and the stream position may advance; on failure
// both are restored to their pre-call state.
//
// Expr is sealed: isExpr is unexported so no type outside this package can
// implement it, keeping the switch in evalDispatch exhaustive.
type Expr interface {
	// Arity reports how many Nodes this expression pushes onto the
	// bindings stack on a successful match. Pure and static: it never
	// consults EvalState.
	Arity() int

	isExpr()
}

// Eval runs e against s using the uniform contract: save position and
// bindings length, dispatch to e's own evaluation logic, and on failure
// restore both. Every recursive call an expression variant makes into a
// sub-expression goes through this entry point, never directly into a
// variant's internal logic.
func Eval(e Expr, s *EvalState) bool {
	if s.halted() {
		return false
	}
	startPos := s.pos()
	startBindings := s.numBindings()

	var entry *TraceEntry
	if s.tracing {
		entry = s.pushTrace(e, startPos)
	}

	ok := evalDispatch(e, s)

	if s.halted() {
		ok = false
	}

	if !ok {
		s.setPos(startPos)
		s.truncateBindings(startBindings)
	} else {
		assert(s.numBindings() == startBindings+e.Arity(),
			"Eval: %T pushed %d bindings, want %d", e, s.numBindings()-startBindings, e.Arity())
	}

	if s.tracing {
		s.popTrace(entry, ok, s.pos())
	}
	return ok
}

func evalDispatch(e Expr, s *EvalState) bool {
	switch v := e.(type) {
	case *Anything:
		return v.eval(s)
	case *End:
		return v.eval(s)
	case *Prim:
		return v.eval(s)
	case *StringPrim:
		return v.eval(s)
	case *RangeExpr:
		return v.eval(s)
	case *UnicodeCharExpr:
		return v.eval(s)
	case *ParamExpr:
		return v.eval(s)
	case *LexExpr:
		return v.eval(s)
	case *AltExpr:
		return v.eval(s)
	case *SeqExpr:
		return v.eval(s)
	case *IterExpr:
		return v.eval(s)
	case *NotExpr:
		return v.eval(s)
	case *LookaheadExpr:
		return v.eval(s)
	case *ArrExpr:
		return v.eval(s)
	case *StrExpr:
		return v.eval(s)
	case *ObjExpr:
		return v.eval(s)
	case *Apply:
		return v.eval(s)
	default:
		panic(fmt.Sprintf("pego: unhandled Expr type %T", e))
	}
}

// skipSpaceIfSyntactic runs the grammar's spaces rule first whenever the
// ambient context is syntactic. Every terminal-matching variant shares this
// behavior, so it lives here rather than being repeated per variant.
func skipSpaceIfSyntactic(s *EvalState) bool {
	if !s.inSyntacticContext() {
		return true
	}
	return s.grammar.applySpaces(s)
}

// --- Anything ---

// Anything matches exactly one atom of any value, advancing the cursor.
// Arity 1.
type Anything struct{}

func (*Anything) Arity() int { return 1 }
func (*Anything) isExpr()    {}

func (e *Anything) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	start := s.pos()
	v, ok := s.stream().Next()
	if !ok {
		s.recordFailure(start, "any value")
		return false
	}
	s.pushBinding(NewTerminalNode(v, s.stream().Interval(start)))
	return true
}

// --- End ---

// End matches the end of the current stream without consuming anything.
// Arity 1 (it pushes an empty terminal Node marking the matched position,
// mirroring every other leaf variant's contract).
type End struct{}

func (*End) Arity() int { return 1 }
func (*End) isExpr()    {}

func (e *End) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	pos := s.pos()
	if !s.stream().AtEnd() {
		s.recordFailure(pos, "end of input")
		return false
	}
	s.pushBinding(NewTerminalNode(value.Undefined(), s.stream().Interval(pos)))
	return true
}

// --- Prim ---

// Prim matches a single atom exactly equal to Value. Arity 1.
type Prim struct {
	Value value.Value
}

func (*Prim) Arity() int { return 1 }
func (*Prim) isExpr()    {}

func (e *Prim) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	start := s.pos()
	if !s.stream().MatchExactly(e.Value) {
		s.recordFailure(start, e.describe())
		return false
	}
	s.pushBinding(NewTerminalNode(e.Value, s.stream().Interval(start)))
	return true
}

// describe renders Value the way failure diagnostics quote an expected
// literal: a rune-valued atom gets the same escaped-literal quoting as a
// grammar's string and character-class literals, anything else falls back
// to its default string form.
func (e *Prim) describe() string {
	if r, ok := e.Value.AsRune(); ok {
		var buf bytes.Buffer
		writeRuneLiteral(&buf, r)
		return buf.String()
	}
	return fmt.Sprintf("%v", e.Value)
}

// --- StringPrim ---

// StringPrim matches a literal run of code points against a string-shaped
// stream. Arity 1; the pushed Node spans the whole literal.
type StringPrim struct {
	Literal string
}

func (*StringPrim) Arity() int { return 1 }
func (*StringPrim) isExpr()    {}

func (e *StringPrim) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	start := s.pos()
	if !s.stream().MatchString(e.Literal) {
		s.recordFailure(start, fmt.Sprintf("%q", e.Literal))
		return false
	}
	iv := s.stream().Interval(start)
	s.pushBinding(NewTerminalNode(value.Str(e.Literal), iv))
	return true
}

// --- RangeExpr ---

// RangeExpr matches one atom falling within any of Ranges (inclusive).
// Arity 1. Built on valset.Ranges, shared with UnicodeCharExpr's
// underlying Matcher machinery.
type RangeExpr struct {
	Ranges []valset.ValueRange
	m      valset.Matcher
}

func NewRangeExpr(ranges ...valset.ValueRange) *RangeExpr {
	return &RangeExpr{Ranges: ranges, m: valset.Ranges(ranges...).Optimize()}
}

func (*RangeExpr) Arity() int { return 1 }
func (*RangeExpr) isExpr()    {}

func (e *RangeExpr) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	start := s.pos()
	v, ok := s.stream().Peek()
	if !ok || !e.matcher().Match(v) {
		s.recordFailure(start, e.matcher().String())
		return false
	}
	s.stream().Next()
	s.pushBinding(NewTerminalNode(v, s.stream().Interval(start)))
	return true
}

func (e *RangeExpr) matcher() valset.Matcher {
	if e.m == nil {
		e.m = valset.Ranges(e.Ranges...).Optimize()
	}
	return e.m
}

// --- UnicodeCharExpr ---

// UnicodeCharExpr matches one rune-valued atom falling in a named Unicode
// general category or alias (see valset.UnicodeCategory). Arity 1.
type UnicodeCharExpr struct {
	Category string
	m        valset.Matcher
}

func NewUnicodeCharExpr(category string) *UnicodeCharExpr {
	return &UnicodeCharExpr{Category: category, m: valset.UnicodeCategory(category)}
}

func (*UnicodeCharExpr) Arity() int { return 1 }
func (*UnicodeCharExpr) isExpr()    {}

func (e *UnicodeCharExpr) eval(s *EvalState) bool {
	if !skipSpaceIfSyntactic(s) {
		return false
	}
	start := s.pos()
	v, ok := s.stream().Peek()
	m := e.matcher()
	if !ok || !m.Match(v) {
		s.recordFailure(start, m.String())
		return false
	}
	s.stream().Next()
	s.pushBinding(NewTerminalNode(v, s.stream().Interval(start)))
	return true
}

func (e *UnicodeCharExpr) matcher() valset.Matcher {
	if e.m == nil {
		e.m = valset.UnicodeCategory(e.Category)
	}
	return e.m
}

// --- ParamExpr ---

// ParamExpr resolves to the Index-th actual argument of the currently
// executing rule application, evaluated in the caller's position and
// context — this is how parameterized rules reuse a caller-supplied
// sub-expression (e.g. `List<elem> = elem ("," elem)*`). ExprArity must
// equal the arity of whatever expression the grammar substitutes at Index
// for every call site; it is supplied by whoever builds the Expr tree,
// since Arity() must stay a pure function of the Expr value alone.
type ParamExpr struct {
	Index     int
	ExprArity int
}

func (e *ParamExpr) Arity() int { return e.ExprArity }
func (*ParamExpr) isExpr()      {}

func (e *ParamExpr) eval(s *EvalState) bool {
	args, ruleName := s.currentArgs()
	if e.Index < 0 || e.Index >= len(args) {
		return s.fail(newParamIndexError(ruleName, e.Index, len(args)))
	}
	return Eval(args[e.Index], s)
}

// --- LexExpr ---

// LexExpr evaluates Body with automatic whitespace-skipping disabled,
// regardless of the ambient syntactic context. Arity equals Body's.
type LexExpr struct {
	Body Expr
}

func (e *LexExpr) Arity() int { return e.Body.Arity() }
func (*LexExpr) isExpr()      {}

func (e *LexExpr) eval(s *EvalState) bool {
	s.pushContext(false)
	ok := Eval(e.Body, s)
	s.popContext()
	return ok
}
