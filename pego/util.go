package pego

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
)

// assert panics if cond is false. Reserved for pego's own internal
// invariants: bindings-stack underflow, memo collision, LR frame
// underflow. Never used for ordinary parse failure or grammar authoring
// mistakes — those go through InvalidGrammarError instead.
func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		var buf bytes.Buffer
		buf.WriteString("assertion failed: ")
		fmt.Fprintf(&buf, format, args...)
		panic(errors.New(buf.String()))
	}
}

// writeRuneLiteral renders r the way grammar diagnostics quote matched
// characters, e.g. in failure-expected descriptions.
func writeRuneLiteral(buf *bytes.Buffer, r rune) {
	switch r {
	case '\a':
		buf.WriteString(`'\a'`)
	case '\b':
		buf.WriteString(`'\b'`)
	case '\t':
		buf.WriteString(`'\t'`)
	case '\n':
		buf.WriteString(`'\n'`)
	case '\v':
		buf.WriteString(`'\v'`)
	case '\f':
		buf.WriteString(`'\f'`)
	case '\r':
		buf.WriteString(`'\r'`)
	case '\\', '\'':
		buf.WriteByte('\'')
		buf.WriteByte('\\')
		buf.WriteRune(r)
		buf.WriteByte('\'')
	default:
		if unicode.IsPrint(r) {
			buf.WriteByte('\'')
			buf.WriteRune(r)
			buf.WriteByte('\'')
		} else {
			fmt.Fprintf(buf, "$%04x", r)
		}
	}
}
