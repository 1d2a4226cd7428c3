package pego

// --- AltExpr ---

// AltExpr tries each Term in order, committing to the first that succeeds
// (ordered choice). Every term must share the same arity; NewAlt enforces
// this at construction time rather than at eval time, since arity is
// meant to be a static property of the tree.
type AltExpr struct {
	Terms []Expr
	arity int
}

// NewAlt builds an AltExpr, panicking if terms is empty or its members
// disagree on arity — an ordered choice between alternatives that bind a
// different number of values has no sensible contract.
func NewAlt(terms ...Expr) *AltExpr {
	assert(len(terms) > 0, "NewAlt: at least one term is required")
	arity := terms[0].Arity()
	for _, t := range terms[1:] {
		assert(t.Arity() == arity, "NewAlt: term arities disagree (%d vs %d)", t.Arity(), arity)
	}
	return &AltExpr{Terms: terms, arity: arity}
}

func (e *AltExpr) Arity() int { return e.arity }
func (*AltExpr) isExpr()      {}

func (e *AltExpr) eval(s *EvalState) bool {
	for _, t := range e.Terms {
		if Eval(t, s) {
			return true
		}
		if s.halted() {
			return false
		}
	}
	return false
}

// --- SeqExpr ---

// SeqExpr evaluates Factors in order, failing (and letting Eval restore
// position/bindings) as soon as one factor fails. Arity is the sum of its
// factors' arities.
type SeqExpr struct {
	Factors []Expr
	arity   int
}

func NewSeq(factors ...Expr) *SeqExpr {
	total := 0
	for _, f := range factors {
		total += f.Arity()
	}
	return &SeqExpr{Factors: factors, arity: total}
}

func (e *SeqExpr) Arity() int { return e.arity }
func (*SeqExpr) isExpr()      {}

func (e *SeqExpr) eval(s *EvalState) bool {
	for _, f := range e.Factors {
		if !Eval(f, s) {
			return false
		}
	}
	return true
}

// --- IterExpr ---

// IterExpr repeats Body between Min and Max times (inclusive), greedily,
// never backtracking a partial count. Max < 0 means unbounded (the `*`
// and `+` productions are Min=0/Max=-1 and Min=1/Max=-1; `?` is
// Min=0/Max=1). Always succeeds once Min is satisfied.
//
// Arity equals Body's arity: each binding column Body contributes becomes
// an `_iter` Node collecting that column across every repetition, rather
// than the repetition count multiplying the arity.
type IterExpr struct {
	Body Expr
	Min  int
	Max  int
}

func (e *IterExpr) Arity() int { return e.Body.Arity() }
func (*IterExpr) isExpr()      {}

func (e *IterExpr) eval(s *EvalState) bool {
	origPos := s.pos()
	bodyArity := e.Body.Arity()
	columns := make([][]*Node, bodyArity)
	count := 0

	for e.Max < 0 || count < e.Max {
		if !Eval(e.Body, s) {
			break
		}
		if s.halted() {
			return false
		}
		pushed := s.spliceBindings(bodyArity)
		for i, n := range pushed {
			columns[i] = append(columns[i], n)
		}
		count++
	}

	if count < e.Min {
		return false
	}

	for _, col := range columns {
		s.pushBinding(newIterNode(col, s.stream(), origPos))
	}
	return true
}

// newIterNode wraps one binding column gathered across an Iter's
// repetitions into a single "_iter" Node, the conventional label used
// across the binding-tree for repeated captures. A zero-match column (Min
// == 0 and Body never matched) has no child to derive an Interval from, so
// it gets a zero-width Interval at origPos, the position Iter started at,
// rather than the stream-less zero value.
func newIterNode(col []*Node, stream *InputStream, origPos int) *Node {
	iv := Interval{Stream: stream, StartIdx: origPos, EndIdx: origPos}
	if len(col) > 0 {
		iv = Interval{Stream: col[0].Interval.Stream, StartIdx: col[0].Interval.StartIdx, EndIdx: col[len(col)-1].Interval.EndIdx}
	}
	return NewNode("_iter", col, iv)
}

// --- NotExpr ---

// NotExpr succeeds, without consuming input or pushing bindings, iff Body
// fails; it is the negative-lookahead primitive. Arity 0. Failure
// recording is suppressed while probing Body, since whatever Body expected
// is irrelevant if Not expects its absence.
type NotExpr struct {
	Body Expr
}

func (*NotExpr) Arity() int { return 0 }
func (*NotExpr) isExpr()    {}

func (e *NotExpr) eval(s *EvalState) bool {
	start := s.pos()
	bindings := s.numBindings()
	s.doNotRecordFailures()
	ok := Eval(e.Body, s)
	s.doRecordFailures()
	s.setPos(start)
	s.truncateBindings(bindings)
	if ok {
		s.recordFailure(start, "not")
		return false
	}
	return true
}

// --- LookaheadExpr ---

// LookaheadExpr succeeds iff Body succeeds, but never consumes input: the
// position is restored regardless of outcome while Body's bindings are
// kept. Arity equals Body's.
type LookaheadExpr struct {
	Body Expr
}

func (e *LookaheadExpr) Arity() int { return e.Body.Arity() }
func (*LookaheadExpr) isExpr()      {}

func (e *LookaheadExpr) eval(s *EvalState) bool {
	start := s.pos()
	ok := Eval(e.Body, s)
	s.setPos(start)
	return ok
}
