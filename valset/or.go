package valset

import "github.com/chronos-tachyon/pego/value"

// Or returns a Matcher that matches iff any of the given Matchers match.
//
// • Match performance: moderate (limited by inner matchers)
//
// • Usefulness: situational
//
func Or(ms ...Matcher) Matcher {
	l := make([]Matcher, len(ms))
	copy(l, ms)
	return &mUnion{List: l}
}

type mUnion struct {
	List []Matcher
}

var _ Matcher = (*mUnion)(nil)

func (m *mUnion) Match(v value.Value) bool {
	for _, sub := range m.List {
		if sub.Match(v) {
			return true
		}
	}
	return false
}

func (m *mUnion) Optimize() Matcher {
	if len(m.List) == 0 {
		return None()
	}
	if len(m.List) == 1 {
		return m.List[0].Optimize()
	}
	opt := make([]Matcher, len(m.List))
	for i, sub := range m.List {
		opt[i] = sub.Optimize()
	}
	return &mUnion{List: opt}
}

func (m *mUnion) String() string {
	return genericString(m)
}
