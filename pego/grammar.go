package pego

import (
	"unicode"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Rule is one named production in a Grammar: its body expression and the
// number of formal parameters it declares (distinct from Body.Arity(),
// the number of bindings a successful application contributes).
type Rule struct {
	Body      Expr
	NumParams int
}

// Grammar is an immutable collection of named rules plus the conventional
// whitespace rule invoked automatically in syntactic context.
//
// Grammars are safe to share and reuse across concurrent Match calls: all
// mutable per-parse state lives in EvalState, never in Grammar itself.
type Grammar struct {
	ruleDict        map[string]*Rule
	SpacesRuleName  string
	defaultStart    string
}

// NewGrammar builds a Grammar from a rule dictionary. spacesRuleName names
// the rule automatically applied for whitespace-skipping in syntactic
// context; pass "" to disable automatic whitespace handling entirely.
// defaultStartRule is used by Match when no explicit start rule is given.
func NewGrammar(rules map[string]*Rule, spacesRuleName, defaultStartRule string) *Grammar {
	cp := make(map[string]*Rule, len(rules))
	for k, v := range rules {
		cp[k] = v
	}
	return &Grammar{ruleDict: cp, SpacesRuleName: spacesRuleName, defaultStart: defaultStartRule}
}

func (g *Grammar) lookupRule(name string) (*Rule, bool) {
	r, ok := g.ruleDict[name]
	return r, ok
}

// applySpaces invokes the grammar's whitespace rule, if any, advancing
// past as much whitespace as it matches. A grammar with no spaces rule
// configured treats this as a no-op success. The spaces rule's own Node is
// discarded rather than left on the bindings stack: callers only want the
// cursor advanced, and every caller (every terminal matcher via
// skipSpaceIfSyntactic, and Apply's own syntactic-context skip) has a
// fixed arity that does not account for it.
func (g *Grammar) applySpaces(s *EvalState) bool {
	if g.SpacesRuleName == "" {
		return true
	}
	before := s.numBindings()
	apply := &Apply{RuleName: g.SpacesRuleName}
	ok := Eval(apply, s)
	if ok {
		s.truncateBindings(before)
	}
	return ok
}

// isSyntacticRuleName reports whether name denotes a syntactic rule
// (automatic whitespace-skipping applies when calling it): by convention,
// a rule name starting with an uppercase letter is syntactic, and one
// starting with anything else (lowercase letter, underscore, digit) is
// lexical.
func isSyntacticRuleName(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r)
}

// MatchOptions configures a single call to Match.
type MatchOptions struct {
	// Logger receives structured diagnostic output during the parse.
	// The zero value is treated as logr.Discard().
	Logger logr.Logger

	// Trace requests that a full evaluation trace be captured and
	// returned via MatchResult.Trace. Costs real allocation; off by
	// default.
	Trace bool

	// RunID overrides the generated run identifier attached to every
	// log line this parse emits. Mainly useful for tests wanting a
	// deterministic value; a fresh uuid.UUID is generated when unset.
	RunID uuid.UUID
}

func (o MatchOptions) runID() uuid.UUID {
	if o.RunID != uuid.Nil {
		return o.RunID
	}
	id, err := uuid.NewRandom()
	if err != nil {
		// uuid.NewRandom only fails if the system's CSPRNG is
		// unavailable, a machine-level fault no caller can recover
		// from meaningfully.
		panic(err)
	}
	return id
}

// MatchResult is the outcome of a successful or failed Match call.
type MatchResult struct {
	// Matched reports whether the start rule matched the entire input.
	Matched bool

	// Node is the parse tree produced by the start rule, valid only
	// when Matched is true.
	Node *Node

	// FailurePos is the rightmost position at which any failure was
	// recorded (-1 if none was), whether or not the overall match
	// succeeded.
	FailurePos int

	// Expected lists the distinct expected-alternative descriptions
	// recorded at FailurePos.
	Expected []string

	// Trace is populated only when MatchOptions.Trace was set.
	Trace *Trace
}

// Match runs grammar's startRule (or its configured default start rule,
// if startRule is "") against input, requiring the entire input to be
// consumed for success. The returned error is non-nil only for a
// programmer mistake (InvalidGrammarError) — an ordinary parse failure is
// reported through MatchResult.Matched, never as an error.
func Match(grammar *Grammar, input *InputStream, startRule string, opts MatchOptions, startArgs ...Expr) (MatchResult, error) {
	if startRule == "" {
		startRule = grammar.defaultStart
	}

	s := newEvalState(grammar, input, opts)
	app := &Apply{RuleName: startRule, Args: startArgs, TopLevel: true}

	ok := Eval(app, s)
	if s.fatalErr != nil {
		return MatchResult{}, s.fatalErr
	}

	result := MatchResult{
		Matched:    ok,
		FailurePos: s.failPos,
		Expected:   s.expectedDescriptions(),
	}
	if ok {
		result.Node = s.lastBinding()
	}
	if s.tracing {
		result.Trace = &Trace{Root: s.traceRoot}
	}
	return result, nil
}

func (s *EvalState) lastBinding() *Node {
	if len(s.bindings) == 0 {
		return nil
	}
	return s.bindings[len(s.bindings)-1]
}
