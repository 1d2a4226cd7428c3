package valset

import "github.com/chronos-tachyon/pego/value"

// All returns a Matcher that matches every possible Value.
//
// • Match performance: fast
//
// • Usefulness: broad
//
func All() Matcher { return singletonAll }

type mAll struct{}

var _ Matcher = (*mAll)(nil)
var singletonAll = &mAll{}

func (m *mAll) Match(v value.Value) bool { return true }
func (m *mAll) Optimize() Matcher        { return singletonAll }
func (m *mAll) String() string           { return "." }
