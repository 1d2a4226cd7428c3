package valset

import "github.com/chronos-tachyon/pego/value"

// Not returns a Matcher that inverts the given Matcher.
//
// • Match performance: fast (limited by inner matcher)
//
// • Usefulness: situational
//
func Not(m Matcher) Matcher {
	return &mNegation{Inner: m}
}

type mNegation struct {
	Inner Matcher
}

var _ Matcher = (*mNegation)(nil)

func (m *mNegation) Match(v value.Value) bool {
	return !m.Inner.Match(v)
}

func (m *mNegation) Optimize() Matcher {
	inner := m.Inner.Optimize()
	switch sub := inner.(type) {
	case *mAll:
		return None()
	case *mNone:
		return All()
	case *mNegation:
		return sub.Inner
	default:
		return &mNegation{Inner: inner}
	}
}

func (m *mNegation) String() string {
	return "!" + m.Inner.String()
}
