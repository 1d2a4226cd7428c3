package pego

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/pego/value"
)

// Node is a rule-labeled parse-tree node with ordered children. Apply
// constructs one Node per successful rule application, splicing the
// bindings its body contributed into Node.Children.
type Node struct {
	RuleName string
	Children []*Node
	Interval Interval

	// terminal, when non-nil, marks this Node as a leaf carrying a
	// matched value rather than a rule application; RuleName and
	// Children are unused in that case. Exposed Value()/IsTerminal()
	// hide this representation choice from callers.
	terminal *value.Value
}

// NewNode constructs a rule-labeled Node with the given children.
func NewNode(ruleName string, children []*Node, iv Interval) *Node {
	return &Node{RuleName: ruleName, Children: children, Interval: iv}
}

// NewTerminalNode constructs a leaf Node carrying v as its matched value.
func NewTerminalNode(v value.Value, iv Interval) *Node {
	vv := v
	return &Node{terminal: &vv, Interval: iv}
}

// IsTerminal reports whether this Node is a leaf (TerminalNode) rather than
// a rule application.
func (n *Node) IsTerminal() bool { return n.terminal != nil }

// Value returns the leaf's matched value and true, or (zero, false) if this
// Node is not terminal.
func (n *Node) Value() (value.Value, bool) {
	if n.terminal == nil {
		return value.Value{}, false
	}
	return *n.terminal, true
}

// SourceText returns the substring of the input the node spans, when the
// input was a string.
func (n *Node) SourceText() string { return n.Interval.String() }

// String renders a debugging representation of the tree rooted at n.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.writeTo(&buf)
	return buf.String()
}

func (n *Node) writeTo(buf *bytes.Buffer) {
	if n.IsTerminal() {
		v, _ := n.Value()
		fmt.Fprintf(buf, "%s", v.String())
		return
	}
	fmt.Fprintf(buf, "%s(", n.RuleName)
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
			buf.WriteByte(' ')
		}
		c.writeTo(buf)
	}
	buf.WriteByte(')')
}
