package pego

import (
	"strconv"
	"unicode/utf8"

	"github.com/chronos-tachyon/pego/value"
)

// InputStream is a positioned cursor over a sequence of atoms. A string
// input iterates code points; an array input iterates its elements
// directly. EvalState holds a stack of these, the top one always being the
// stream currently under evaluation — Arr, Str, and Obj push a fresh
// InputStream over a nested value and pop it again when done.
type InputStream struct {
	runes    []rune // nil unless this stream was built from a string
	items    []value.Value
	pos      int
	posInfos []*PosInfo // lazily populated, one slot per position touched by Apply
}

// NewStringInputStream builds an InputStream whose atoms are s's code
// points.
func NewStringInputStream(s string) *InputStream {
	runes := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		runes = append(runes, r)
	}
	items := make([]value.Value, len(runes))
	for i, r := range runes {
		items[i] = value.Rune(r)
	}
	return &InputStream{runes: runes, items: items}
}

// NewArrayInputStream builds an InputStream whose atoms are items, in
// order.
func NewArrayInputStream(items []value.Value) *InputStream {
	cp := make([]value.Value, len(items))
	copy(cp, items)
	return &InputStream{items: cp}
}

// Len returns the number of atoms in the stream.
func (s *InputStream) Len() int { return len(s.items) }

// PosInfoAt returns the packrat bookkeeping for position pos, allocating
// it on first touch. Each InputStream owns an independent position space,
// so nested streams pushed by Arr/Str/Obj can never collide with the
// positions of the stream they were unwrapped from.
func (s *InputStream) PosInfoAt(pos int) *PosInfo {
	if s.posInfos == nil {
		s.posInfos = make([]*PosInfo, len(s.items)+1)
	}
	if s.posInfos[pos] == nil {
		s.posInfos[pos] = newPosInfo()
	}
	return s.posInfos[pos]
}

// Pos returns the current cursor position.
func (s *InputStream) Pos() int { return s.pos }

// SetPos restores the cursor to a previously observed position. Callers are
// responsible for the invariant that pos only moves forward during a
// successful match and is explicitly restored on failure.
func (s *InputStream) SetPos(pos int) {
	assert(pos >= 0 && pos <= len(s.items), "InputStream.SetPos: pos %d out of range [0, %d]", pos, len(s.items))
	s.pos = pos
}

// AtEnd reports whether the cursor has reached the end of the stream.
func (s *InputStream) AtEnd() bool { return s.pos >= len(s.items) }

// Next returns the atom at the cursor and advances it, or (zero, false) at
// end of stream.
func (s *InputStream) Next() (value.Value, bool) {
	if s.AtEnd() {
		return value.Value{}, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}

// Peek returns the atom at the cursor without advancing it, or
// (zero, false) at end of stream.
func (s *InputStream) Peek() (value.Value, bool) {
	if s.AtEnd() {
		return value.Value{}, false
	}
	return s.items[s.pos], true
}

// MatchExactly consumes one atom if it equals v, advancing the cursor on
// success and leaving it untouched on failure.
func (s *InputStream) MatchExactly(v value.Value) bool {
	cur, ok := s.Peek()
	if !ok || !value.Equal(cur, v) {
		return false
	}
	s.pos++
	return true
}

// MatchString consumes len(lit) atoms if they equal lit's runes in order.
// Used by StringPrim; on an array-shaped InputStream (s.runes == nil) it
// always returns false.
func (s *InputStream) MatchString(lit string) bool {
	if s.runes == nil {
		return false
	}
	want := []rune(lit)
	if s.pos+len(want) > len(s.runes) {
		return false
	}
	for i, r := range want {
		if s.runes[s.pos+i] != r {
			return false
		}
	}
	s.pos += len(want)
	return true
}

// Interval returns the half-open span [start, end) over this stream. end
// defaults to the current cursor position when omitted.
func (s *InputStream) Interval(start int, end ...int) Interval {
	e := s.pos
	if len(end) > 0 {
		e = end[0]
	}
	assert(start >= 0 && start <= e && e <= len(s.items), "Interval: invalid span [%d, %d) over length %d", start, e, len(s.items))
	return Interval{Stream: s, StartIdx: start, EndIdx: e}
}

// SourceText renders the substring of atoms in the interval, for string
// streams only; used by diagnostics. Returns "" for array streams.
func (s *InputStream) SourceText(start, end int) string {
	if s.runes == nil {
		return ""
	}
	return string(s.runes[start:end])
}

// Interval is a half-open span [StartIdx, EndIdx) over an InputStream,
// used for node source spans.
type Interval struct {
	Stream   *InputStream
	StartIdx int
	EndIdx   int
}

// Len returns the number of atoms covered by the interval.
func (iv Interval) Len() int { return iv.EndIdx - iv.StartIdx }

// Values returns the atoms covered by the interval, in order.
func (iv Interval) Values() []value.Value {
	if iv.Stream == nil {
		return nil
	}
	return iv.Stream.items[iv.StartIdx:iv.EndIdx]
}

// String renders the interval's source text when the underlying stream is
// string-shaped, or a bracketed index range otherwise.
func (iv Interval) String() string {
	if iv.Stream != nil && iv.Stream.runes != nil {
		return iv.Stream.SourceText(iv.StartIdx, iv.EndIdx)
	}
	return "@[" + strconv.Itoa(iv.StartIdx) + "," + strconv.Itoa(iv.EndIdx) + ")"
}
