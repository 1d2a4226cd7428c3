package valset

import "github.com/chronos-tachyon/pego/value"

// And returns a Matcher that matches iff all of the given Matchers match.
//
// • Match performance: moderate (limited by inner matchers)
//
// • Usefulness: situational
//
func And(ms ...Matcher) Matcher {
	l := make([]Matcher, len(ms))
	copy(l, ms)
	return &mIntersection{List: l}
}

type mIntersection struct {
	List []Matcher
}

var _ Matcher = (*mIntersection)(nil)

func (m *mIntersection) Match(v value.Value) bool {
	for _, sub := range m.List {
		if !sub.Match(v) {
			return false
		}
	}
	return true
}

func (m *mIntersection) Optimize() Matcher {
	if len(m.List) == 0 {
		return All()
	}
	if len(m.List) == 1 {
		return m.List[0].Optimize()
	}
	opt := make([]Matcher, len(m.List))
	for i, sub := range m.List {
		opt[i] = sub.Optimize()
	}
	return &mIntersection{List: opt}
}

func (m *mIntersection) String() string {
	return genericString(m)
}
