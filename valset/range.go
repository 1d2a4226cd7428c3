package valset

import "github.com/chronos-tachyon/pego/value"

// ValueRange represents an inclusive range [Lo, Hi] over an ordered Value
// domain (runes, or numbers — see value.Compare).
//
// If Lo == Hi, this ValueRange represents the single Value Lo.
//
// If Lo and Hi are not mutually comparable (or the candidate Value being
// tested isn't comparable to both), the range never matches.
//
type ValueRange struct {
	Lo value.Value
	Hi value.Value
}

// Ranges returns a Matcher that matches any Value that falls in one of the
// given ValueRange entries.
//
// • Match performance: linear in len(rs)
//
// • Usefulness: broad
//
// This is the Matcher behind the PEG Range expression: one ValueRange per
// `lo..hi` grammar production.
//
func Ranges(rs ...ValueRange) Matcher {
	cp := make([]ValueRange, len(rs))
	copy(cp, rs)
	return &mRange{Ranges: cp}
}

type mRange struct {
	Ranges []ValueRange
}

var _ Matcher = (*mRange)(nil)

func (m *mRange) Match(v value.Value) bool {
	for _, r := range m.Ranges {
		if value.InRange(r.Lo, v, r.Hi) {
			return true
		}
	}
	return false
}

func (m *mRange) Optimize() Matcher {
	if len(m.Ranges) == 0 {
		return None()
	}
	if len(m.Ranges) == 1 {
		r := m.Ranges[0]
		if value.Equal(r.Lo, r.Hi) {
			return Exactly(r.Lo)
		}
	}
	return m
}

func (m *mRange) String() string {
	return genericString(m)
}
