// Package valset provides set-membership predicates over value.Value, the
// dynamic-shape atom type pego's expressions consume. It backs the Range
// and UnicodeChar expression variants.
package valset

import (
	"github.com/chronos-tachyon/pego/value"
)

// Matcher is a predicate that returns true for certain Values.
//
// For the sake of all that is good and holy, implementations of Matcher
// must *not* change their state on a call to Match.
//
type Matcher interface {
	// Match returns true iff v is in the set.
	Match(v value.Value) bool

	// Optimize returns a Matcher that matches the same set of Values, but
	// possibly in a more efficient way. If no better implementation can be
	// found, returns this matcher.
	Optimize() Matcher

	// String returns a string representation of the set.
	String() string
}
