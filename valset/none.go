package valset

import "github.com/chronos-tachyon/pego/value"

// None returns a Matcher that never matches any Value.
//
// • Match performance: fast
//
// • Usefulness: situational
//
func None() Matcher { return singletonNone }

type mNone struct{}

var _ Matcher = (*mNone)(nil)
var singletonNone = &mNone{}

func (m *mNone) Match(v value.Value) bool { return false }
func (m *mNone) Optimize() Matcher        { return singletonNone }
func (m *mNone) String() string           { return "!." }
