package pego

// Apply invokes a named rule with the given actual arguments, substituting
// any ParamExpr inside Args against the caller's own current arguments
// before the callee ever sees them. This is the only variant that
// consults the packrat memo table and the only one that can detect and
// grow left recursion. Arity is always 1: a successful application
// contributes exactly one Node, the rule's own.
//
// TopLevel marks the single Apply that Match constructs for the start
// rule: after an otherwise-successful match it additionally requires the
// whole input to be consumed, skipping trailing whitespace first when the
// start rule is syntactic. No other Apply (including one recursively
// naming the same rule from inside the grammar) carries this flag.
type Apply struct {
	RuleName string
	Args     []Expr
	TopLevel bool
}

func (*Apply) Arity() int { return 1 }
func (*Apply) isExpr()    {}

func (a *Apply) eval(s *EvalState) bool {
	callerArgs, _ := s.currentArgs()
	args := make([]Expr, len(a.Args))
	for i, arg := range a.Args {
		args[i] = substituteParams(arg, callerArgs)
	}

	rule, ok := s.grammar.lookupRule(a.RuleName)
	if !ok {
		return s.fail(newUnknownRuleError(a.RuleName, sortedRuleNames(s.grammar.ruleDict)))
	}
	if len(args) != rule.NumParams {
		return s.fail(newArityMismatchError(a.RuleName, rule.NumParams, len(args)))
	}

	isSyn := isSyntacticRuleName(a.RuleName)
	if a.RuleName != s.grammar.SpacesRuleName && (s.inSyntacticContext() || isSyn) {
		if !s.grammar.applySpaces(s) {
			return false
		}
	}

	startPos := s.pos()
	memoKey := s.computeMemoKey(a.RuleName, args)
	posInfo := s.stream().PosInfoAt(startPos)

	if rec := posInfo.lookupMemo(memoKey); rec != nil {
		if posInfo.isActive(memoKey) && rec.LRFrameIdx < 0 {
			posInfo.startLeftRecursion(memoKey, rec)
		}
		s.attachReplayedTrace(rec.Trace)
		if !a.replay(s, rec, startPos) {
			return false
		}
		return a.checkTopLevel(s, startPos)
	}

	rec := &MemoRec{Pos: startPos, Value: nil, LRFrameIdx: -1}
	posInfo.installMemo(memoKey, rec)

	s.pushContext(isSyn)
	s.pushApplication(a.RuleName, args)
	posInfo.enter(memoKey)
	a.evalBodyOnce(s, rule.Body, startPos, rec)
	posInfo.exit(memoKey)

	if rec.LRFrameIdx >= 0 {
		a.growSeed(s, rule.Body, posInfo, memoKey, rec, startPos)
	}
	s.popApplication()
	s.popContext()

	if !a.replay(s, rec, startPos) {
		return false
	}
	return a.checkTopLevel(s, startPos)
}

// checkTopLevel enforces full-input consumption for the Apply Match
// constructs for the start rule: a successful top-level application must
// leave the stream at its end, after an optional syntactic whitespace-skip
// when the start rule itself is syntactic. Non-top-level Apply values are
// unaffected and always return true here.
func (a *Apply) checkTopLevel(s *EvalState, startPos int) bool {
	if !a.TopLevel {
		return true
	}
	if isSyntacticRuleName(a.RuleName) {
		s.grammar.applySpaces(s)
	}
	if !s.stream().AtEnd() {
		s.recordFailure(s.pos(), "end of input")
		return false
	}
	return true
}

// evalBodyOnce runs body once from startPos and records the outcome into
// rec: on success, the Node it built, the position just past it, and the
// trace entry body's own Eval call produced (so a later replay of this
// memo record can reproduce the same subtree); on failure, a reset back to
// startPos with no Value and no Trace. It never touches posInfo
// bookkeeping — callers enter/exit the application stack around it
// themselves, since growSeed calls this repeatedly inside one enter/exit
// span per iteration.
func (a *Apply) evalBodyOnce(s *EvalState, body Expr, startPos int, rec *MemoRec) bool {
	s.setPos(startPos)
	ok := Eval(body, s)
	if !ok {
		rec.Pos = startPos
		rec.Value = nil
		rec.Trace = nil
		return false
	}
	rec.Trace = s.lastOpenChild()
	children := s.spliceBindings(body.Arity())
	rec.Pos = s.pos()
	rec.Value = NewNode(a.RuleName, children, s.stream().Interval(startPos))
	return true
}

// growSeed implements Warth-style seed growing: having detected that
// evaluating rule's body at startPos recursively re-applied the same rule
// at the same position, it keeps re-evaluating the body — each time
// seeing the previous iteration's result via the ordinary memo-replay path
// — until an iteration fails to advance the match position, then commits
// to the last improvement.
//
// Every application recorded as involved in this frame is evicted from
// the position's memo table before each iteration: their results may have
// been computed against a not-yet-final seed and must be recomputed
// against the latest one (this is what makes indirect left recursion,
// where the recursive path runs through one or more other rules before
// returning to rule, converge correctly).
func (a *Apply) growSeed(s *EvalState, body Expr, posInfo *PosInfo, memoKey string, rec *MemoRec, startPos int) {
	frame := posInfo.lrFrames[rec.LRFrameIdx]
	s.Logger.V(1).Info("entering left recursion", "rule", memoKey, "pos", startPos)
	for {
		bestPos, bestValue, bestTrace := rec.Pos, rec.Value, rec.Trace

		posInfo.invalidateInvolved(frame, memoKey)
		posInfo.enter(memoKey)
		ok := a.evalBodyOnce(s, body, startPos, rec)
		posInfo.exit(memoKey)

		if !ok || rec.Pos <= bestPos {
			rec.Pos = bestPos
			rec.Value = bestValue
			rec.Trace = bestTrace
			break
		}
		s.Logger.V(1).Info("seed grew", "rule", memoKey, "pos", rec.Pos)
	}
	posInfo.endLeftRecursion()
}

// replay pushes rec's cached answer, succeeding iff rec.Value is non-nil.
func (a *Apply) replay(s *EvalState, rec *MemoRec, startPos int) bool {
	if rec.Value == nil {
		s.recordFailure(startPos, a.RuleName)
		return false
	}
	s.setPos(rec.Pos)
	s.pushBinding(rec.Value)
	return true
}

// substituteParams returns a copy of e with every ParamExpr(i) replaced by
// callerArgs[i], recursively, so that a callee never sees an unresolved
// Param referring to a scope it cannot see. Expressions with no
// sub-expressions (and no Param of their own) are returned unchanged.
func substituteParams(e Expr, callerArgs []Expr) Expr {
	switch v := e.(type) {
	case *ParamExpr:
		return callerArgs[v.Index]
	case *LexExpr:
		return &LexExpr{Body: substituteParams(v.Body, callerArgs)}
	case *AltExpr:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = substituteParams(t, callerArgs)
		}
		return &AltExpr{Terms: terms, arity: v.arity}
	case *SeqExpr:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = substituteParams(f, callerArgs)
		}
		return &SeqExpr{Factors: factors, arity: v.arity}
	case *IterExpr:
		return &IterExpr{Body: substituteParams(v.Body, callerArgs), Min: v.Min, Max: v.Max}
	case *NotExpr:
		return &NotExpr{Body: substituteParams(v.Body, callerArgs)}
	case *LookaheadExpr:
		return &LookaheadExpr{Body: substituteParams(v.Body, callerArgs)}
	case *ArrExpr:
		return &ArrExpr{Body: substituteParams(v.Body, callerArgs)}
	case *StrExpr:
		return &StrExpr{Body: substituteParams(v.Body, callerArgs)}
	case *ObjExpr:
		props := make([]ObjProp, len(v.Props))
		for i, p := range v.Props {
			props[i] = ObjProp{Name: p.Name, Body: substituteParams(p.Body, callerArgs)}
		}
		return &ObjExpr{Props: props, Lenient: v.Lenient}
	case *Apply:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteParams(a, callerArgs)
		}
		return &Apply{RuleName: v.RuleName, Args: args}
	default:
		// Leaf expressions with no sub-expressions of their own
		// (Anything, End, Prim, StringPrim, RangeExpr, UnicodeCharExpr)
		// cannot contain a Param and are shared unchanged.
		return e
	}
}
