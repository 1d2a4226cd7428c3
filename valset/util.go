package valset

import "fmt"

// genericString renders a debugging string for matchers too structural to
// have a more specific String method (unlike byteset, whose 256-value
// domain made enumeration-based rendering cheap, valset's Value domain is
// unbounded, so there is no ForEach to drive a symbol dump).
func genericString(m Matcher) string {
	return fmt.Sprintf("<%T>", m)
}
