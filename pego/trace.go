package pego

// TraceEntry records one Eval call: which expression ran, where it started
// and (if it succeeded) ended, whether it matched, and the trace entries
// for every sub-expression it in turn evaluated. Building a Trace costs
// nothing when MatchOptions.Trace is false: EvalState.tracing gates every
// push/pop in expr.go's Eval wrapper.
type TraceEntry struct {
	Expr     Expr
	StartPos int
	EndPos   int
	Succeeded bool
	Children []*TraceEntry
}

// Trace is the root of a completed evaluation's trace tree, returned via
// MatchResult when MatchOptions.Trace is set.
type Trace struct {
	Root *TraceEntry
}

// cloneTraceEntry deep-copies e and its Children, so that folding a
// memoized application's cached trace into a new parent (attachReplayedTrace)
// never gives two parents the same *TraceEntry — each replay site's subtree
// is its own, independently walkable copy.
func cloneTraceEntry(e *TraceEntry) *TraceEntry {
	if e == nil {
		return nil
	}
	clone := &TraceEntry{
		Expr:      e.Expr,
		StartPos:  e.StartPos,
		EndPos:    e.EndPos,
		Succeeded: e.Succeeded,
	}
	if len(e.Children) > 0 {
		clone.Children = make([]*TraceEntry, len(e.Children))
		for i, c := range e.Children {
			clone.Children[i] = cloneTraceEntry(c)
		}
	}
	return clone
}

// pushTrace opens a new trace entry for e on the stack of open entries;
// popTrace parents it under the next entry out (or records it as the root)
// once it closes.
func (s *EvalState) pushTrace(e Expr, startPos int) *TraceEntry {
	entry := &TraceEntry{Expr: e, StartPos: startPos}
	s.traceOpen = append(s.traceOpen, entry)
	return entry
}

// popTrace closes entry, folding it into its parent's Children (or into
// s.traceRoot if entry was the outermost call).
func (s *EvalState) popTrace(entry *TraceEntry, ok bool, endPos int) {
	entry.Succeeded = ok
	if ok {
		entry.EndPos = endPos
	} else {
		entry.EndPos = entry.StartPos
	}

	n := len(s.traceOpen)
	assert(n > 0 && s.traceOpen[n-1] == entry, "popTrace: trace stack mismatch")
	s.traceOpen = s.traceOpen[:n-1]

	if n > 1 {
		parent := s.traceOpen[n-2]
		parent.Children = append(parent.Children, entry)
	} else {
		s.traceRoot = entry
	}
}
