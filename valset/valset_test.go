package valset

import (
	"testing"

	"github.com/chronos-tachyon/pego/value"
)

func TestExactly(t *testing.T) {
	m := Exactly(value.Rune('a'))
	if !m.Match(value.Rune('a')) {
		t.Fatalf("Exactly('a').Match('a') = false; want true")
	}
	if m.Match(value.Rune('b')) {
		t.Fatalf("Exactly('a').Match('b') = true; want false")
	}
}

func TestRanges(t *testing.T) {
	m := Ranges(ValueRange{Lo: value.Rune('0'), Hi: value.Rune('9')})
	if !m.Match(value.Rune('5')) {
		t.Fatalf("digit range should match '5'")
	}
	if m.Match(value.Rune('a')) {
		t.Fatalf("digit range should not match 'a'")
	}
}

func TestAndOrNot(t *testing.T) {
	digits := Ranges(ValueRange{Lo: value.Rune('0'), Hi: value.Rune('9')})
	letters := Ranges(ValueRange{Lo: value.Rune('a'), Hi: value.Rune('z')})

	alnum := Or(digits, letters)
	if !alnum.Match(value.Rune('5')) || !alnum.Match(value.Rune('q')) {
		t.Fatalf("alnum should match digits and lowercase letters")
	}
	if alnum.Match(value.Rune('!')) {
		t.Fatalf("alnum should not match '!'")
	}

	notDigit := Not(digits)
	if notDigit.Match(value.Rune('5')) {
		t.Fatalf("Not(digits) should not match '5'")
	}
	if !notDigit.Match(value.Rune('q')) {
		t.Fatalf("Not(digits) should match 'q'")
	}

	none := And(digits, letters)
	if none.Match(value.Rune('5')) || none.Match(value.Rune('q')) {
		t.Fatalf("And(digits, letters) should be empty")
	}
}

func TestOptimizeDoubleNegation(t *testing.T) {
	m := Not(Not(All())).Optimize()
	if _, ok := m.(*mAll); !ok {
		t.Fatalf("Optimize() of !!. = %T; want *mAll", m)
	}
}

func TestUnicodeCategory(t *testing.T) {
	letters := UnicodeCategory("letter")
	if !letters.Match(value.Rune('Q')) {
		t.Fatalf("letter category should match 'Q'")
	}
	if letters.Match(value.Rune('5')) {
		t.Fatalf("letter category should not match '5'")
	}
}

func TestUnicodeCategoryUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("UnicodeCategory(bogus) should panic")
		}
	}()
	UnicodeCategory("not-a-real-category")
}
