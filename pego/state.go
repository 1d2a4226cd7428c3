package pego

import (
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/chronos-tachyon/pego/value"
)

// appFrame records one entry in the current application chain: the
// substituted actual arguments of an in-progress Apply, used to resolve
// Param(i) by index, plus the rule name reported when that index is out of
// range.
type appFrame struct {
	ruleName string
	args     []Expr
}

// EvalState is the top-level parse state: the input-stream stack, the
// bindings stack, the per-position PosInfo table (held on each InputStream
// — see input.go), failure recording, and an optional logr.Logger, a run
// ID, and a memo-key intern cache.
//
// A distinct top-level parse always uses a fresh EvalState; states are
// never shared across parses or goroutines.
type EvalState struct {
	streams   []*InputStream
	bindings  []*Node
	grammar   *Grammar
	ctxStack  []bool // true = syntactic (skip whitespace), false = lexical
	appChain  []appFrame
	suppress  int // >0 while failure recording is suppressed (inside Not)
	failPos   int
	failExprs map[string]bool // expected-expression descriptions at failPos

	tracing   bool
	traceOpen []*TraceEntry // stack of currently-open trace entries
	traceRoot *TraceEntry   // set once the outermost Eval call returns

	fatalErr error

	Logger logr.Logger
	RunID  uuid.UUID
	intern *internCache
}

// newEvalState constructs a fresh EvalState over the given top-level
// stream. Logger defaults to logr.Discard(): tracing costs nothing when
// nobody asked for it.
func newEvalState(g *Grammar, stream *InputStream, opts MatchOptions) *EvalState {
	s := &EvalState{
		streams:   []*InputStream{stream},
		grammar:   g,
		failPos:   -1,
		failExprs: make(map[string]bool),
		tracing:   opts.Trace,
		Logger:    opts.Logger,
		RunID:     opts.runID(),
		intern:    newInternCache(defaultInternCacheSize),
	}
	if s.Logger.GetSink() == nil {
		s.Logger = logr.Discard()
	}
	s.Logger = s.Logger.WithValues("run", s.RunID.String())
	return s
}

func (s *EvalState) stream() *InputStream { return s.streams[len(s.streams)-1] }

func (s *EvalState) pushStream(st *InputStream) { s.streams = append(s.streams, st) }

func (s *EvalState) popStream() {
	n := len(s.streams)
	assert(n > 1, "EvalState.popStream: cannot pop the top-level stream")
	s.streams = s.streams[:n-1]
}

func (s *EvalState) pos() int      { return s.stream().Pos() }
func (s *EvalState) setPos(p int)  { s.stream().SetPos(p) }
func (s *EvalState) atEnd() bool   { return s.stream().AtEnd() }
func (s *EvalState) numBindings() int { return len(s.bindings) }

func (s *EvalState) pushBinding(n *Node) { s.bindings = append(s.bindings, n) }

// spliceBindings removes the last n bindings and returns them in original
// order, for Apply/Iter to fold into a parent Node or an _iter column.
func (s *EvalState) spliceBindings(n int) []*Node {
	total := len(s.bindings)
	assert(n >= 0 && n <= total, "spliceBindings: underflow, want %d of %d", n, total)
	out := make([]*Node, n)
	copy(out, s.bindings[total-n:])
	s.bindings = s.bindings[:total-n]
	return out
}

func (s *EvalState) truncateBindings(n int) {
	assert(n <= len(s.bindings), "truncateBindings: %d exceeds current length %d", n, len(s.bindings))
	s.bindings = s.bindings[:n]
}

// inSyntacticContext reports whether the ambient (caller's) context skips
// whitespace right now — i.e. whether the nearest enclosing rule
// application is syntactic and we are not inside a Lex.
func (s *EvalState) inSyntacticContext() bool {
	if len(s.ctxStack) == 0 {
		return false
	}
	return s.ctxStack[len(s.ctxStack)-1]
}

func (s *EvalState) pushContext(syntactic bool) { s.ctxStack = append(s.ctxStack, syntactic) }
func (s *EvalState) popContext() {
	n := len(s.ctxStack)
	assert(n > 0, "popContext: context stack underflow")
	s.ctxStack = s.ctxStack[:n-1]
}

func (s *EvalState) pushApplication(ruleName string, args []Expr) {
	s.appChain = append(s.appChain, appFrame{ruleName: ruleName, args: args})
}
func (s *EvalState) popApplication() {
	n := len(s.appChain)
	assert(n > 0, "popApplication: application chain underflow")
	s.appChain = s.appChain[:n-1]
}

// currentArgs returns the substituted argument list of the innermost
// in-progress Apply, used to resolve Param(i).
func (s *EvalState) currentArgs() ([]Expr, string) {
	n := len(s.appChain)
	if n == 0 {
		return nil, ""
	}
	top := s.appChain[n-1]
	return top.args, top.ruleName
}

// --- failure recording ---

func (s *EvalState) doNotRecordFailures() { s.suppress++ }
func (s *EvalState) doRecordFailures() {
	assert(s.suppress > 0, "doRecordFailures: suppression counter underflow")
	s.suppress--
}

// recordFailure adds expr's description as an expected alternative at pos.
// Only the rightmost failure position's expected set survives.
func (s *EvalState) recordFailure(pos int, description string) {
	if s.suppress > 0 {
		return
	}
	if pos > s.failPos {
		s.failPos = pos
		s.failExprs = map[string]bool{description: true}
	} else if pos == s.failPos {
		s.failExprs[description] = true
	}
}

func (s *EvalState) expectedDescriptions() []string {
	out := make([]string, 0, len(s.failExprs))
	for d := range s.failExprs {
		out = append(out, d)
	}
	return out
}

// lastOpenChild returns the trace entry most recently folded into whichever
// entry is now innermost-open (i.e. the entry a just-finished nested Eval
// call produced), or nil when tracing is off or nothing has closed yet.
func (s *EvalState) lastOpenChild() *TraceEntry {
	if !s.tracing || len(s.traceOpen) == 0 {
		return nil
	}
	parent := s.traceOpen[len(s.traceOpen)-1]
	if len(parent.Children) == 0 {
		return nil
	}
	return parent.Children[len(parent.Children)-1]
}

// attachReplayedTrace folds a memoized application's captured trace subtree
// in as a child of whichever entry is currently innermost-open, so that a
// packrat replay reproduces the same trace its first evaluation built
// instead of appearing as a childless leaf. The subtree is cloned rather
// than shared: every replay site gets its own copy, so the result stays a
// tree (one parent per node) instead of a DAG that a naive walk — the
// obvious thing to write against a type documented as a trace tree — would
// revisit once per incoming edge. Left recursion's growSeed replays a
// growing seed on every iteration, so without cloning here the sharing
// would compound once per grow step.
func (s *EvalState) attachReplayedTrace(entry *TraceEntry) {
	if !s.tracing || entry == nil || len(s.traceOpen) == 0 {
		return
	}
	entry = cloneTraceEntry(entry)
	parent := s.traceOpen[len(s.traceOpen)-1]
	parent.Children = append(parent.Children, entry)
}

// --- fatal (programmer) errors ---

// fail sets the first fatal InvalidGrammarError encountered and returns
// false so the caller can propagate failure without a second return value.
func (s *EvalState) fail(err error) bool {
	if s.fatalErr == nil {
		s.fatalErr = err
	}
	return false
}

func (s *EvalState) halted() bool { return s.fatalErr != nil }

// --- Arr/Str/Obj structural helpers ---

func (s *EvalState) currentAtom() (value.Value, bool) {
	return s.stream().Peek()
}
