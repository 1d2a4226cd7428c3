package pego

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrEmptyStack signals that popping a stack (here, the application
	// or LR-frame stack) that has nothing left to pop is always an
	// internal bug, never a grammar-authoring mistake.
	ErrEmptyStack = errors.New("pego: empty stack")

	// ErrParamIndexRange is wrapped into an InvalidGrammarError when a
	// Param expression's index falls outside the current application's
	// argument list.
	ErrParamIndexRange = errors.New("pego: parameter index out of range")

	// ErrUnknownRule is wrapped into an InvalidGrammarError when an Apply
	// names a rule absent from the grammar's ruleDict.
	ErrUnknownRule = errors.New("pego: unknown rule")

	// ErrArityMismatch is wrapped into an InvalidGrammarError when an
	// Apply supplies a different number of arguments than the rule
	// declares parameters for.
	ErrArityMismatch = errors.New("pego: argument count does not match rule arity")
)

// InvalidGrammarError reports a programmer error: an unknown rule name, an
// arity mismatch, or an out-of-range parameter index. These are fatal to
// the current parse and are always returned as Go errors, never folded
// into the ordinary MatchResult failure path.
//
// Err carries a stack trace via github.com/pkg/errors.WithStack: a grammar
// bug surfaces to a human debugging a hand-written grammar, and the call
// stack into the nested Apply that tripped it is the fastest way to find
// the offending rule reference.
type InvalidGrammarError struct {
	Err        error
	RuleName   string
	Suggestion string
}

func (e *InvalidGrammarError) Error() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "pego: invalid grammar: %v", e.Err)
	if e.RuleName != "" {
		fmt.Fprintf(&buf, " (rule %q)", e.RuleName)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&buf, ": did you mean %q?", e.Suggestion)
	}
	return buf.String()
}

func (e *InvalidGrammarError) Unwrap() error { return e.Err }

// newUnknownRuleError builds an InvalidGrammarError for an Apply that names
// a rule absent from the grammar, suggesting the closest known rule name
// when one is within a small edit distance.
func newUnknownRuleError(ruleName string, known []string) error {
	err := &InvalidGrammarError{
		Err:      pkgerrors.WithStack(ErrUnknownRule),
		RuleName: ruleName,
	}
	best := ""
	bestDist := -1
	for _, candidate := range known {
		d := levenshtein.ComputeDistance(ruleName, candidate)
		if bestDist == -1 || d < bestDist || (d == bestDist && candidate < best) {
			bestDist = d
			best = candidate
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		err.Suggestion = best
	}
	return err
}

func newArityMismatchError(ruleName string, want, got int) error {
	return &InvalidGrammarError{
		Err:      pkgerrors.WithStack(fmt.Errorf("%w: rule %q expects %d argument(s), got %d", ErrArityMismatch, ruleName, want, got)),
		RuleName: ruleName,
	}
}

func newParamIndexError(ruleName string, index, numArgs int) error {
	return &InvalidGrammarError{
		Err:      pkgerrors.WithStack(fmt.Errorf("%w: index %d, have %d argument(s)", ErrParamIndexRange, index, numArgs)),
		RuleName: ruleName,
	}
}

// sortedRuleNames returns the grammar's rule names in sorted order, so that
// suggestion text (and therefore error text) is deterministic regardless of
// map iteration order.
func sortedRuleNames(ruleDict map[string]*Rule) []string {
	names := make([]string, 0, len(ruleDict))
	for name := range ruleDict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
