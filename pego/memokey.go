package pego

import (
	"bytes"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultInternCacheSize bounds the memo-key intern cache: one entry per
// distinct (rule, argument-list) call site actually exercised during a
// parse. Grammars rarely define more than a few hundred such call sites,
// so this ceiling is generous headroom rather than a tight budget.
const defaultInternCacheSize = 4096

// internCache memoizes the expensive part of building a packrat memo key —
// rendering a parameterized call site's substituted argument trees to a
// canonical string — keyed by the cheap part, the call site's argument
// pointer identities. The same (rule, args-slice) pair is evaluated at
// many different input positions during a parse, and Args is a stable Go
// slice for every non-parameterized call site, so this turns repeat
// lookups into a single cache hit instead of re-walking the argument
// trees every time.
type internCache struct {
	lru *lru.Cache[string, string]
}

func newInternCache(size int) *internCache {
	c, err := lru.New[string, string](size)
	if err != nil {
		panic(err)
	}
	return &internCache{lru: c}
}

// computeMemoKey renders the canonical packrat memo key for an Apply to
// ruleName with the given (already parameter-substituted) arguments:
// "ruleName" when there are none, otherwise
// "ruleName<arg1Key,arg2Key,...>".
func (s *EvalState) computeMemoKey(ruleName string, args []Expr) string {
	if len(args) == 0 {
		return ruleName
	}

	idKey := identityKey(ruleName, args)
	if cached, ok := s.intern.lru.Get(idKey); ok {
		return cached
	}

	var buf bytes.Buffer
	buf.WriteString(ruleName)
	buf.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(describeExprKey(a))
	}
	buf.WriteByte('>')
	full := buf.String()
	s.intern.lru.Add(idKey, full)
	return full
}

// identityKey builds a cheap cache key from pointer identity: for
// non-parameterized call sites (the overwhelming majority), the same Args
// slice elements are reused across every position the rule is applied at,
// so their addresses alone are a valid — and far cheaper — proxy for deep
// structural equality.
func identityKey(ruleName string, args []Expr) string {
	var buf bytes.Buffer
	buf.WriteString(ruleName)
	for _, a := range args {
		fmt.Fprintf(&buf, "|%p", a)
	}
	return buf.String()
}

// describeExprKey renders a compact, canonical description of an
// expression tree for use inside a memo key. Two structurally identical
// trees must render identically; two distinct trees need not render
// differently unless they are genuinely reachable as distinct substituted
// arguments to the same rule at the same position.
func describeExprKey(e Expr) string {
	var buf bytes.Buffer
	writeExprKey(&buf, e)
	return buf.String()
}

func writeExprKey(buf *bytes.Buffer, e Expr) {
	switch v := e.(type) {
	case *Anything:
		buf.WriteString("_")
	case *End:
		buf.WriteString("$")
	case *Prim:
		fmt.Fprintf(buf, "=%v", v.Value)
	case *StringPrim:
		fmt.Fprintf(buf, "=%q", v.Literal)
	case *RangeExpr:
		fmt.Fprintf(buf, "range%v", v.Ranges)
	case *UnicodeCharExpr:
		fmt.Fprintf(buf, "\\p{%s}", v.Category)
	case *ParamExpr:
		fmt.Fprintf(buf, "param%d", v.Index)
	case *LexExpr:
		buf.WriteString("lex(")
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *AltExpr:
		buf.WriteString("alt(")
		for i, t := range v.Terms {
			if i > 0 {
				buf.WriteByte('|')
			}
			writeExprKey(buf, t)
		}
		buf.WriteByte(')')
	case *SeqExpr:
		buf.WriteString("seq(")
		for i, f := range v.Factors {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeExprKey(buf, f)
		}
		buf.WriteByte(')')
	case *IterExpr:
		fmt.Fprintf(buf, "iter[%d,%d](", v.Min, v.Max)
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *NotExpr:
		buf.WriteString("!(")
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *LookaheadExpr:
		buf.WriteString("&(")
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *ArrExpr:
		buf.WriteString("arr(")
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *StrExpr:
		buf.WriteString("str(")
		writeExprKey(buf, v.Body)
		buf.WriteByte(')')
	case *ObjExpr:
		fmt.Fprintf(buf, "obj[lenient=%v](", v.Lenient)
		for i, p := range v.Props {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(p.Name)
			buf.WriteByte(':')
			writeExprKey(buf, p.Body)
		}
		buf.WriteByte(')')
	case *Apply:
		buf.WriteString(v.RuleName)
		if len(v.Args) > 0 {
			buf.WriteByte('<')
			for i, a := range v.Args {
				if i > 0 {
					buf.WriteByte(',')
				}
				writeExprKey(buf, a)
			}
			buf.WriteByte('>')
		}
	default:
		panic(fmt.Sprintf("pego: unhandled Expr type %T in writeExprKey", e))
	}
}
