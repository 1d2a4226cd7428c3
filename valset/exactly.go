package valset

import "github.com/chronos-tachyon/pego/value"

// Exactly returns a Matcher that matches one specific Value.
//
// • Match performance: fast
//
// • Usefulness: broad
//
// This is the best choice if you want to match exactly one Value, e.g. a
// single literal character.
//
func Exactly(v value.Value) Matcher {
	return &mExact{V: v}
}

type mExact struct{ V value.Value }

var _ Matcher = (*mExact)(nil)

func (m *mExact) Match(v value.Value) bool {
	return value.Equal(v, m.V)
}

func (m *mExact) Optimize() Matcher {
	return m
}

func (m *mExact) String() string {
	return m.V.String()
}
