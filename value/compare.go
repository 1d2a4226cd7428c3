package value

// Compare orders two atom Values of the same underlying primitive domain,
// returning (cmp, true) with cmp < 0, == 0, or > 0, or (0, false) if the two
// Values are not ordered atoms of a comparable domain.
//
// Only the domains a Range expression is meaningfully defined over are
// supported: rune and the built-in numeric kinds. String, Array, and Object
// Values are never ordered; neither is a nil atom.
func Compare(a, b Value) (int, bool) {
	if a.kind != KindAtom || b.kind != KindAtom {
		return 0, false
	}
	if ar, aok := a.atom.(rune); aok {
		if br, bok := b.atom.(rune); bok {
			return compareInt64(int64(ar), int64(br)), true
		}
		return 0, false
	}
	af, aok := asFloat(a.atom)
	bf, bok := asFloat(b.atom)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// InRange reports whether x falls within [lo, hi] (inclusive), per Compare's
// ordering. Returns false if any of the three Values are not comparable
// atoms of the same domain.
func InRange(lo, x, hi Value) bool {
	cLo, ok1 := Compare(lo, x)
	cHi, ok2 := Compare(x, hi)
	return ok1 && ok2 && cLo <= 0 && cHi <= 0
}
