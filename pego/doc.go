// Package pego evaluates Parsing Expression Grammars against either a
// string (whose atoms are code points) or an arbitrary array of
// value.Value atoms, producing a labeled parse tree.
//
// A grammar is a Grammar: a dictionary of named Rules, each a compiled
// Expr tree, plus the name of the rule (if any) automatically applied for
// whitespace-skipping in syntactic context. Match drives one top-level
// application of a start rule against an InputStream and reports whether
// it consumed the input in full.
//
// # Expression variants
//
// Every rule body is built from a small closed family of Expr variants.
// Each has a fixed arity — the number of Nodes it contributes to the
// bindings stack on success — and each obeys the same contract, enforced
// once by the package-level Eval function rather than repeated in every
// variant:
//
//	startPos := s.pos()
//	startBindings := s.numBindings()
//	ok := <variant-specific evaluation>
//	if !ok {
//	    s.setPos(startPos)
//	    s.truncateBindings(startBindings)
//	}
//	return ok
//
// • Anything, End, Prim, StringPrim, RangeExpr, UnicodeCharExpr — terminal
// matchers. Arity 1: each pushes exactly one terminal Node spanning
// whatever it consumed (zero atoms for End).
//
// • ParamExpr — resolves to the caller's Index-th actual argument,
// evaluated in the caller's position and context. Arity equals whatever
// expression it resolves to.
//
// • LexExpr — evaluates Body with automatic whitespace-skipping disabled
// regardless of the ambient syntactic context. Arity equals Body's.
//
// • AltExpr — ordered choice: tries each term in turn, committing to the
// first that succeeds. Every term must share one static arity.
//
// • SeqExpr — evaluates factors in order, failing as soon as one does;
// arity is the sum of the factors' arities.
//
// • IterExpr — repeats Body between Min and Max times (Max < 0 meaning
// unbounded), greedily and without backtracking a partial count. Arity
// equals Body's: each binding column Body contributes becomes one
// "_iter" Node collecting that column across every repetition.
//
// • NotExpr — negative lookahead. Succeeds, consuming nothing, iff Body
// fails; failure recording is suppressed while probing Body. Arity 0.
//
// • LookaheadExpr — positive lookahead. Succeeds iff Body succeeds, but
// always restores the position afterward. Arity equals Body's.
//
// • ArrExpr, StrExpr, ObjExpr — structural matchers over non-string
// atoms: each requires the current atom to be a KindArray, KindString, or
// KindObject value.Value respectively, then matches a sub-expression
// against a nested nested stream built from that atom's contents (or, for
// ObjExpr, against each named property in turn). ObjExpr additionally
// supports a lenient mode that ignores unmatched properties and binds
// whatever is left over (value.Value.Without) rather than rejecting the
// match.
//
// • Apply — rule application; see below.
//
// # Packrat memoization and left recursion
//
// Apply is the only variant that touches the packrat memo table, and the
// only one that can detect and grow left recursion, using the seed-growing
// technique described by Warth, Douglass, and Millstein ("Packrat Parsers
// Can Support Left Recursion", 2008):
//
//	func applyRule(pos):
//	    rec := memo[pos][key]
//	    if rec != nil:
//	        if isActive(key) and rec has no open LR frame:
//	            openLeftRecursion(key, rec)
//	        return replay(rec)
//	    rec := newSeedRecord()
//	    memo[pos][key] = rec
//	    enter(key); evalBodyOnce(rec); exit(key)
//	    if rec has an open LR frame:
//	        growSeed(rec)      // re-evaluate until the match stops advancing
//	    return replay(rec)
//
// Every position an Apply is entered at owns a PosInfo: the stack of
// currently active applications (used to detect recursion), the memo
// table itself, and any open LRFrames. Growing a seed invalidates the
// memo entries of every application recorded as "involved" in that frame
// before each iteration, since their answers may have depended on a seed
// that has since grown further — this is what makes indirect left
// recursion (a rule reached through one or more other rules before
// recursing back to itself) converge correctly, not only direct
// recursion.
//
// # Whitespace and lexical context
//
// A rule name starting with an uppercase letter is syntactic; one
// starting with anything else is lexical. Before Anything, Prim,
// StringPrim, Range, UnicodeChar, End, or an Apply, the grammar's spaces
// rule runs first whenever the caller's ambient context is syntactic or
// the rule being applied is itself syntactic (whichever is true),
// provided the rule isn't the spaces rule itself. Evaluating a syntactic
// rule's body pushes a syntactic context; evaluating a lexical rule's
// body, or anything inside a LexExpr, pushes a non-syntactic one — so a
// syntactic rule calling a lexical one still skips leading whitespace at
// the call site, but whitespace is not auto-skipped between the lexical
// rule's own internal terminals.
package pego
