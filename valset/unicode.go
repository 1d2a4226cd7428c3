package valset

import (
	"fmt"
	"unicode"

	"github.com/chronos-tachyon/pego/value"
)

// UnicodeCategory returns a Matcher backing the UnicodeChar expression
// variant: it matches any rune-valued atom Value falling in the named
// Unicode general category ("L" letters, "N" numbers, "Zs" space
// separators, ...), a Unicode script ("Latin", "Greek", ...), or one of a
// handful of convenience aliases ("letter", "digit", "space", "punct",
// "upper", "lower", ...).
//
// UnicodeCategory panics if name is not a recognized category, script, or
// alias; a
// grammar author passing a bad category name is a compile-time programmer
// error, not a parse failure.
func UnicodeCategory(name string) Matcher {
	if fn, ok := unicodeAliases[name]; ok {
		return &mUnicode{Name: name, Fn: fn}
	}
	if tab, ok := unicode.Categories[name]; ok {
		return &mUnicode{Name: name, Fn: func(r rune) bool { return unicode.Is(tab, r) }}
	}
	if tab, ok := unicode.Scripts[name]; ok {
		return &mUnicode{Name: name, Fn: func(r rune) bool { return unicode.Is(tab, r) }}
	}
	panic(fmt.Sprintf("valset: unknown Unicode category or script %q", name))
}

var unicodeAliases = map[string]func(rune) bool{
	"letter": unicode.IsLetter,
	"digit":  unicode.IsDigit,
	"number": unicode.IsNumber,
	"space":  unicode.IsSpace,
	"punct":  unicode.IsPunct,
	"upper":  unicode.IsUpper,
	"lower":  unicode.IsLower,
	"title":  unicode.IsTitle,
	"print":  unicode.IsPrint,
	"graphic": unicode.IsGraphic,
	"control": unicode.IsControl,
	"symbol":  unicode.IsSymbol,
	"mark":    unicode.IsMark,
}

type mUnicode struct {
	Name string
	Fn   func(rune) bool
}

var _ Matcher = (*mUnicode)(nil)

func (m *mUnicode) Match(v value.Value) bool {
	r, ok := v.AsRune()
	if !ok {
		return false
	}
	return m.Fn(r)
}

func (m *mUnicode) Optimize() Matcher { return m }

func (m *mUnicode) String() string {
	return "\\p{" + m.Name + "}"
}
