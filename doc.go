// Package dtf is a structural differ for JSON & YAML documents. Given two
// object-rooted document trees it reports, per location, keys present on only
// one side, values whose types disagree, scalar values that differ, and arrays
// whose contents differ.
//
// Unlike a line-oriented diff, dtf works on the structure of the data itself,
// so formatting, whitespace, key order and the choice of JSON or YAML never
// show up as differences. Both formats are normalized into a single tagged
// value type, Node, before comparison:
//   null, bool, number, string, array, object
//
// Differences are reported in four independent categories, each computed by
// its own checker:
//   KeyDiff   - a key exists on one side only
//   TypeDiff  - both sides define a location, with different types
//   ValueDiff - two scalars of the same type render differently
//   ArrayDiff - an element of one array has no counterpart in the other
//
// Locations are named with dotted / bracketed paths: "nested.array[2]". The
// path grammar is stable; saved results key off literal path strings.
//
// Arrays are compared index-wise when the working context says both sides keep
// the same order and the arrays have equal length. In every other case arrays
// are compared as multisets of canonical element renderings and only the
// array checker reports their differences.
//
// The parse package turns JSON & YAML bytes into Node trees, the render
// package formats results as terminal tables or HTML, the store package
// persists results, and cmd/dtf wires it all into a command line tool.
package dtf
