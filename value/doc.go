// Package value implements the dynamic-shape input atoms that a pego
// InputStream is built from.
//
// A grammar does not only match strings: the same evaluation core matches
// structured input (arrays and property bags) via the Arr, Str, and Obj
// expression variants. Every atom the core touches — a single character, a
// whole nested array, an object's property — is therefore represented
// uniformly as a Value, a small tagged union:
//
//	Value = Atom(primitive) | String(string) | Array([]Value) | Object(map[string]Value)
//
// Atom holds anything with no further PEG-visible structure: a rune (when
// iterating a string's code points), a float64, a bool, or nil. String,
// Array, and Object carry their own element Values so that Arr/Str/Obj can
// recurse into them with a fresh InputStream.
//
// Package value has no dependency on package pego or package valset; both of
// those depend on it. It sits at the bottom of the dependency graph on
// purpose, mirroring how byteset.Matcher operates purely on the built-in
// byte type with no knowledge of the VM that calls it.
package value
