package pego

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/chronos-tachyon/pego/valset"
	"github.com/chronos-tachyon/pego/value"
)

var reNL = regexp.MustCompile(`(?m)^`)

func diff(l, r string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(l, r, false)
	pretty := dmp.DiffPrettyText(diffs)
	return reNL.ReplaceAllLiteralString(pretty, "\t")
}

func mustMatch(t *testing.T, g *Grammar, start, input string, opts MatchOptions) MatchResult {
	t.Helper()
	result, err := Match(g, NewStringInputStream(input), start, opts)
	if err != nil {
		t.Fatalf("Match returned an error: %v", err)
	}
	return result
}

func digitRange() *RangeExpr {
	return NewRangeExpr(valset.ValueRange{Lo: value.Rune('0'), Hi: value.Rune('9')})
}

// --- S1: simple choice and iteration ---

func TestMatch_ChoiceAndIteration(t *testing.T) {
	g := NewGrammar(map[string]*Rule{
		"digit":  {Body: digitRange(), NumParams: 0},
		"digits": {Body: &IterExpr{Body: &Apply{RuleName: "digit"}, Min: 1, Max: -1}, NumParams: 0},
	}, "", "digits")

	data := []struct {
		Input   string
		Matched bool
	}{
		{"7", true},
		{"12345", true},
		{"", false},
		{"12a", false},
	}
	for i, row := range data {
		result := mustMatch(t, g, "digits", row.Input, MatchOptions{})
		if result.Matched != row.Matched {
			t.Errorf("%s/%03d: input %q: matched = %v, want %v", t.Name(), i, row.Input, result.Matched, row.Matched)
		}
	}
}

// --- S2: classic left-recursive expression grammar ---
//
//	expr      <- expr_plus / num
//	expr_plus <- expr '+' num
//	num       <- digit+
//
// The recursive alternative is its own rule so that both alternatives of
// expr's choice contribute one binding, as NewAlt requires.
func leftRecursiveExprGrammar() *Grammar {
	num := &Apply{RuleName: "num"}
	exprPlusNum := NewSeq(&Apply{RuleName: "expr"}, &StringPrim{Literal: "+"}, num)
	expr := NewAlt(&Apply{RuleName: "expr_plus"}, num)
	return NewGrammar(map[string]*Rule{
		"expr":      {Body: expr, NumParams: 0},
		"expr_plus": {Body: exprPlusNum, NumParams: 0},
		"num":       {Body: &IterExpr{Body: digitRange(), Min: 1, Max: -1}, NumParams: 0},
		"digit":     {Body: digitRange(), NumParams: 0},
	}, "", "expr")
}

func TestMatch_LeftRecursiveExpression(t *testing.T) {
	g := leftRecursiveExprGrammar()

	data := []struct {
		Input   string
		Matched bool
		Want    string
	}{
		{"1", true, `expr(num(_iter('1')))`},
		{"1+2", true, `expr(expr_plus(expr(num(_iter('1'))), "+", num(_iter('2'))))`},
		{"1+2+3", true, `expr(expr_plus(expr(expr_plus(expr(num(_iter('1'))), "+", num(_iter('2')))), "+", num(_iter('3'))))`},
		{"1+", false, ""},
	}
	for i, row := range data {
		result := mustMatch(t, g, "expr", row.Input, MatchOptions{})
		if result.Matched != row.Matched {
			t.Errorf("%s/%03d: input %q: matched = %v, want %v", t.Name(), i, row.Input, result.Matched, row.Matched)
			continue
		}
		if !row.Matched {
			continue
		}
		got := nodeShape(result.Node)
		if got != row.Want {
			t.Errorf("%s/%03d: input %q: wrong tree:\n%s", t.Name(), i, row.Input, diff(row.Want, got))
		}
	}
}

// nodeShape renders a Node's rule/terminal shape without source text, so
// fixtures stay readable regardless of exact Interval bookkeeping.
func nodeShape(n *Node) string {
	var buf bytes.Buffer
	writeNodeShape(&buf, n)
	return buf.String()
}

func writeNodeShape(buf *bytes.Buffer, n *Node) {
	if n.IsTerminal() {
		v, _ := n.Value()
		buf.WriteString(v.String())
		return
	}
	buf.WriteString(n.RuleName)
	buf.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeNodeShape(buf, c)
	}
	buf.WriteByte(')')
}

// --- S3: indirect left recursion ---
//
//	a  <- ax / 'y'
//	ax <- b 'x'
//	b  <- bz / 'w'
//	bz <- a 'z'
//
// The sequences are their own rules so that both alternatives of each
// choice contribute one binding, as NewAlt requires.
func TestMatch_IndirectLeftRecursion(t *testing.T) {
	a := NewAlt(&Apply{RuleName: "ax"}, &StringPrim{Literal: "y"})
	ax := NewSeq(&Apply{RuleName: "b"}, &StringPrim{Literal: "x"})
	b := NewAlt(&Apply{RuleName: "bz"}, &StringPrim{Literal: "w"})
	bz := NewSeq(&Apply{RuleName: "a"}, &StringPrim{Literal: "z"})
	g := NewGrammar(map[string]*Rule{
		"a":  {Body: a, NumParams: 0},
		"ax": {Body: ax, NumParams: 0},
		"b":  {Body: b, NumParams: 0},
		"bz": {Body: bz, NumParams: 0},
	}, "", "a")

	data := []struct {
		Input   string
		Matched bool
	}{
		{"y", true},
		{"wx", true},
		{"ywx", false},  // 'y' alone already consumes all of "y"; trailing "wx" is unconsumed
		{"wxzx", true},  // b grows to "wx"+'z', then a grows to that seed plus a trailing 'x'
		{"wzx", false},  // no derivation of a or b produces this string
		{"wxzxzx", true}, // one further growth round: a grows again off the "wxzx" seed
	}
	for i, row := range data {
		result := mustMatch(t, g, "a", row.Input, MatchOptions{})
		if result.Matched != row.Matched {
			t.Errorf("%s/%03d: input %q: matched = %v, want %v", t.Name(), i, row.Input, result.Matched, row.Matched)
		}
	}
}

// --- S4: negative lookahead ---

func TestMatch_NegativeLookahead(t *testing.T) {
	// notDigit <- !digit . ; digit <- [0-9]
	g := NewGrammar(map[string]*Rule{
		"digit":    {Body: digitRange(), NumParams: 0},
		"notDigit": {Body: NewSeq(&NotExpr{Body: &Apply{RuleName: "digit"}}, &Anything{}), NumParams: 0},
	}, "", "notDigit")

	if r := mustMatch(t, g, "notDigit", "a", MatchOptions{}); !r.Matched {
		t.Errorf("expected 'a' to match notDigit")
	}
	if r := mustMatch(t, g, "notDigit", "5", MatchOptions{}); r.Matched {
		t.Errorf("expected '5' to fail notDigit")
	}
}

// --- S5: structural array match ---

func TestMatch_StructuralArray(t *testing.T) {
	// pair <- arr(any any)
	pair := &ArrExpr{Body: NewSeq(&Anything{}, &Anything{})}
	g := NewGrammar(map[string]*Rule{
		"pair": {Body: pair, NumParams: 0},
	}, "", "pair")

	items := []value.Value{value.Array([]value.Value{value.Atom(1), value.Atom(2)})}
	result, err := Match(g, NewArrayInputStream(items), "pair", MatchOptions{})
	if err != nil {
		t.Fatalf("Match returned an error: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected array [1, 2] to match pair")
	}

	badItems := []value.Value{value.Array([]value.Value{value.Atom(1), value.Atom(2), value.Atom(3)})}
	result, err = Match(g, NewArrayInputStream(badItems), "pair", MatchOptions{})
	if err != nil {
		t.Fatalf("Match returned an error: %v", err)
	}
	if result.Matched {
		t.Errorf("expected array [1, 2, 3] to fail pair (extra element)")
	}
}

// --- S6: lenient object match ---

func TestMatch_LenientObjectMatch(t *testing.T) {
	// point <- obj{x: any, y: any, ...}
	point := &ObjExpr{
		Props: []ObjProp{
			{Name: "x", Body: &Anything{}},
			{Name: "y", Body: &Anything{}},
		},
		Lenient: true,
	}
	g := NewGrammar(map[string]*Rule{
		"point": {Body: point, NumParams: 0},
	}, "", "point")

	obj := value.Object(map[string]value.Value{
		"x":     value.Atom(1),
		"y":     value.Atom(2),
		"color": value.Str("red"),
	})
	result, err := Match(g, NewArrayInputStream([]value.Value{obj}), "point", MatchOptions{})
	if err != nil {
		t.Fatalf("Match returned an error: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected lenient point match to succeed despite the extra 'color' property")
	}
	rest, ok := result.Node.Children[0].Value()
	if !ok {
		t.Fatalf("expected the lenient leftover Node to be terminal")
	}
	if !rest.HasOwnProperty("color") || rest.HasOwnProperty("x") {
		t.Errorf("leftover value = %v, want only 'color' remaining", rest)
	}
}

// --- S7: syntactic top-level whitespace handling ---

// Start <- 'a' ; spaces <- ' '*
func syntacticStartGrammar() *Grammar {
	start := &Rule{Body: &StringPrim{Literal: "a"}, NumParams: 0}
	spaces := &Rule{Body: &IterExpr{Body: &StringPrim{Literal: " "}, Min: 0, Max: -1}, NumParams: 0}
	return NewGrammar(map[string]*Rule{
		"Start":  start,
		"spaces": spaces,
	}, "spaces", "Start")
}

func TestMatch_SyntacticTopLevelSkipsTrailingWhitespace(t *testing.T) {
	g := syntacticStartGrammar()

	if r := mustMatch(t, g, "Start", "a", MatchOptions{}); !r.Matched {
		t.Errorf("expected bare 'a' to match the syntactic start rule")
	}
	if r := mustMatch(t, g, "Start", "a ", MatchOptions{}); !r.Matched {
		t.Errorf("expected trailing whitespace after a syntactic start rule to be consumed")
	}
	if r := mustMatch(t, g, "Start", "a  b", MatchOptions{}); r.Matched {
		t.Errorf("expected unconsumed trailing content past whitespace to still fail")
	}
}

// --- ambient/domain-stack coverage ---

func TestMatch_UnknownRuleSuggestsClosestName(t *testing.T) {
	g := NewGrammar(map[string]*Rule{
		"digit": {Body: digitRange(), NumParams: 0},
	}, "", "digit")

	_, err := Match(g, NewStringInputStream("1"), "diget", MatchOptions{})
	if err == nil {
		t.Fatalf("expected an InvalidGrammarError for an unknown start rule")
	}
	ige, ok := err.(*InvalidGrammarError)
	if !ok {
		t.Fatalf("error type = %T, want *InvalidGrammarError", err)
	}
	if ige.Suggestion != "digit" {
		t.Errorf("suggestion = %q, want %q", ige.Suggestion, "digit")
	}
}

func TestMatch_DefaultLoggerIsDiscarded(t *testing.T) {
	g := NewGrammar(map[string]*Rule{
		"digit": {Body: digitRange(), NumParams: 0},
	}, "", "digit")
	result := mustMatch(t, g, "digit", "5", MatchOptions{})
	if !result.Matched {
		t.Fatalf("expected '5' to match digit")
	}
}

func TestDedentFixtureStillReadable(t *testing.T) {
	expected := dedent.Dedent(`
		expr(expr(num(_iter(1))), +, num(_iter(2)))
	`)[1:]
	if expected == "" {
		t.Fatalf("dedent produced an empty fixture")
	}
}
