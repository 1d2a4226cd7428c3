package value

import "testing"

func TestAtomRoundTrip(t *testing.T) {
	v := Rune('a')
	r, ok := v.AsRune()
	if !ok || r != 'a' {
		t.Fatalf("AsRune() = %q, %v; want 'a', true", r, ok)
	}
	if v.Kind() != KindAtom {
		t.Fatalf("Kind() = %v; want KindAtom", v.Kind())
	}
}

func TestObjectOwnProperties(t *testing.T) {
	obj := Object(map[string]Value{
		"name":  Str("a"),
		"extra": Atom(7.0),
	})
	if !obj.HasOwnProperty("name") {
		t.Fatalf("HasOwnProperty(name) = false; want true")
	}
	if obj.HasOwnProperty("missing") {
		t.Fatalf("HasOwnProperty(missing) = true; want false")
	}
	if obj.NumOwnProperties() != 2 {
		t.Fatalf("NumOwnProperties() = %d; want 2", obj.NumOwnProperties())
	}
	rest := obj.Without("name")
	if rest.NumOwnProperties() != 1 || !rest.HasOwnProperty("extra") {
		t.Fatalf("Without(name) = %v; want {extra: 7}", rest)
	}
}

func TestEqual(t *testing.T) {
	a := Array([]Value{Atom(1.0), Str("x")})
	b := Array([]Value{Atom(1.0), Str("x")})
	c := Array([]Value{Atom(2.0), Str("x")})
	if !Equal(a, b) {
		t.Fatalf("Equal(a, b) = false; want true")
	}
	if Equal(a, c) {
		t.Fatalf("Equal(a, c) = true; want false")
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		lo, x, hi Value
		want      bool
	}{
		{Rune('a'), Rune('m'), Rune('z'), true},
		{Rune('a'), Rune('A'), Rune('z'), false},
		{Atom(1.0), Atom(5.0), Atom(10.0), true},
		{Str("a"), Str("m"), Str("z"), false},
	}
	for _, c := range cases {
		got := InRange(c.lo, c.x, c.hi)
		if got != c.want {
			t.Errorf("InRange(%v, %v, %v) = %v; want %v", c.lo, c.x, c.hi, got, c.want)
		}
	}
}
