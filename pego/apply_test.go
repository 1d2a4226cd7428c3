package pego

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chronos-tachyon/pego/value"
)

func arrayOfDigits(ds ...rune) []value.Value {
	out := make([]value.Value, 1)
	elems := make([]value.Value, len(ds))
	for i, d := range ds {
		elems[i] = value.Rune(d)
	}
	out[0] = value.Array(elems)
	return out
}

// --- parameterized rules (Param/ExprArity) ---

// list<elem> <- elem (',' elem)*
func parameterizedListGrammar() *Grammar {
	elemParam := &ParamExpr{Index: 0, ExprArity: 1}
	tail := &IterExpr{
		Body: NewSeq(&StringPrim{Literal: ","}, &ParamExpr{Index: 0, ExprArity: 1}),
		Min:  0,
		Max:  -1,
	}
	list := &Rule{
		Body:      NewSeq(elemParam, tail),
		NumParams: 1,
	}
	digit := &Rule{Body: digitRange(), NumParams: 0}
	start := &Rule{
		Body:      &Apply{RuleName: "list", Args: []Expr{&Apply{RuleName: "digit"}}},
		NumParams: 0,
	}
	return NewGrammar(map[string]*Rule{
		"list":  list,
		"digit": digit,
		"start": start,
	}, "", "start")
}

func TestMatch_ParameterizedRule(t *testing.T) {
	g := parameterizedListGrammar()

	r := mustMatch(t, g, "start", "1,2,3", MatchOptions{})
	if !r.Matched {
		t.Fatalf("expected %q to match", "1,2,3")
	}
	if got := r.Node.SourceText(); got != "1,2,3" {
		t.Errorf("SourceText = %q, want %q", got, "1,2,3")
	}

	if r := mustMatch(t, g, "start", "1,2,", MatchOptions{}); r.Matched {
		t.Errorf("expected trailing comma with no following digit to fail")
	}
}

// Reusing one grammar, and so the same parameterized call site
// ("list<digit>"), for two separate Match calls over distinct input must
// produce structurally distinct Nodes.
func TestMatch_ParameterizedRuleInternReuse(t *testing.T) {
	g := parameterizedListGrammar()

	r1 := mustMatch(t, g, "start", "1,2", MatchOptions{})
	r2 := mustMatch(t, g, "start", "4,5,6", MatchOptions{})
	if !r1.Matched || !r2.Matched {
		t.Fatalf("expected both inputs to match, got %v and %v", r1.Matched, r2.Matched)
	}
	if diff := cmp.Diff(r1.Node, r2.Node, cmpopts.IgnoreFields(Node{}, "Interval"), cmpopts.IgnoreUnexported(Node{})); diff == "" {
		t.Errorf("expected distinct trees for distinct inputs, got identical shapes")
	}
}

// --- intern cache hit/miss bookkeeping ---

func TestInternCache_HitOnRepeatedCallSite(t *testing.T) {
	cache := newInternCache(defaultInternCacheSize)
	s := &EvalState{intern: cache}

	args := []Expr{&Apply{RuleName: "digit"}}
	k1 := s.computeMemoKey("list", args)
	k2 := s.computeMemoKey("list", args)
	if k1 != k2 {
		t.Fatalf("computeMemoKey not stable across repeat calls: %q vs %q", k1, k2)
	}
	if got, want := k1, "list<digit>"; got != want {
		t.Errorf("computeMemoKey = %q, want %q", got, want)
	}

	idKey := identityKey("list", args)
	if _, ok := cache.lru.Get(idKey); !ok {
		t.Errorf("expected identity key %q to be cached after first render", idKey)
	}
}

func TestInternCache_DistinctArgsDistinctKeys(t *testing.T) {
	cache := newInternCache(defaultInternCacheSize)
	s := &EvalState{intern: cache}

	k1 := s.computeMemoKey("list", []Expr{&Apply{RuleName: "digit"}})
	k2 := s.computeMemoKey("list", []Expr{&StringPrim{Literal: "x"}})
	if k1 == k2 {
		t.Errorf("expected distinct argument trees to render distinct memo keys, both got %q", k1)
	}
}

// --- IterExpr zero-match interval ---

// digits <- [0-9]* 'z'
//
// Against "z", the leading [0-9]* matches zero times at origPos == 0, so
// its _iter Node's Interval must be the zero-width [0,0) over the input
// stream rather than the stream-less zero value.
func TestIterExpr_ZeroMatchIntervalAtOrigPos(t *testing.T) {
	g := NewGrammar(map[string]*Rule{
		"digits": {Body: NewSeq(&IterExpr{Body: digitRange(), Min: 0, Max: -1}, &StringPrim{Literal: "z"}), NumParams: 0},
	}, "", "digits")

	r := mustMatch(t, g, "digits", "z", MatchOptions{})
	if !r.Matched {
		t.Fatalf("expected %q to match", "z")
	}
	iterNode := r.Node.Children[0]
	if iterNode.RuleName != "_iter" {
		t.Fatalf("expected first child to be an _iter node, got %q", iterNode.RuleName)
	}
	if got := iterNode.SourceText(); got != "" {
		t.Errorf("zero-match _iter SourceText = %q, want empty", got)
	}
	if iterNode.Interval.Stream == nil {
		t.Errorf("zero-match _iter Interval has a nil Stream, want the enclosing stream")
	}
	if iterNode.Interval.StartIdx != 0 || iterNode.Interval.EndIdx != 0 {
		t.Errorf("zero-match _iter Interval = [%d,%d), want [0,0)", iterNode.Interval.StartIdx, iterNode.Interval.EndIdx)
	}
}

// --- memoized replay reproduces the first evaluation's trace ---

// twice <- digit digit ; start <- &twice twice
//
// The lookahead applies "twice" at position 0 first; the real application
// at the same position is then a memo hit, and its replay must reproduce
// the first evaluation's trace subtree.
func TestMatch_ReplayReproducesTrace(t *testing.T) {
	digit := &Rule{Body: digitRange(), NumParams: 0}
	// twice <- digit digit
	twice := &Rule{Body: NewSeq(&Apply{RuleName: "digit"}, &Apply{RuleName: "digit"}), NumParams: 0}
	// start <- &twice twice  (the lookahead forces "twice" to be applied at
	// position 0 once before the real, non-lookahead application reuses
	// the memoized record via replay)
	start := &Rule{
		Body:      NewSeq(&LookaheadExpr{Body: &Apply{RuleName: "twice"}}, &Apply{RuleName: "twice"}),
		NumParams: 0,
	}
	g := NewGrammar(map[string]*Rule{
		"digit": digit,
		"twice": twice,
		"start": start,
	}, "", "start")

	result, err := Match(g, NewStringInputStream("12"), "start", MatchOptions{Trace: true})
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected %q to match", "12")
	}
	if result.Trace == nil || result.Trace.Root == nil {
		t.Fatalf("expected a populated trace")
	}

	// The outer SeqExpr trace entry should have two children: the
	// lookahead (wrapping the first Apply(twice)) and the real
	// Apply(twice) — and the second,
	// replayed from the memo table, must itself have a Children subtree
	// (the two digit Applies) rather than appearing as a childless leaf.
	seqEntry := result.Trace.Root.Children[0]
	if len(seqEntry.Children) != 2 {
		t.Fatalf("expected the start rule's Seq to have traced 2 children, got %d", len(seqEntry.Children))
	}
	replayedApply := seqEntry.Children[1]
	if len(replayedApply.Children) == 0 {
		t.Errorf("replayed Apply(twice) has no trace children; memoized replay failed to reproduce the first evaluation's subtree")
	}
}

// --- structural Node comparison via go-cmp ---

func TestMatch_StructuralArrayNodeShape(t *testing.T) {
	g := NewGrammar(map[string]*Rule{
		"digit": {Body: digitRange(), NumParams: 0},
		"pair":  {Body: &ArrExpr{Body: NewSeq(&Apply{RuleName: "digit"}, &Apply{RuleName: "digit"})}, NumParams: 0},
	}, "", "pair")

	arr := arrayOfDigits('1', '2')
	result, err := Match(g, NewArrayInputStream(arr), "pair", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected [1, 2] to match pair")
	}

	other := arrayOfDigits('1', '2')
	again, err := Match(g, NewArrayInputStream(other), "pair", MatchOptions{})
	if err != nil {
		t.Fatalf("unexpected grammar error: %v", err)
	}
	if diff := cmp.Diff(result.Node, again.Node, cmpopts.IgnoreFields(Node{}, "Interval"), cmpopts.IgnoreUnexported(Node{})); diff != "" {
		t.Errorf("identical input produced different tree shapes (-first +second):\n%s", diff)
	}
}
