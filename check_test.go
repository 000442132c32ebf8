package dtf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustNode builds a node from a json string. object keys come out sorted,
// numbers keep their literals
func mustNode(t *testing.T, js string) *Node {
	t.Helper()
	var v interface{}
	dec := json.NewDecoder(strings.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatal(err)
	}
	n, err := FromValue(v)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func testContext(t *testing.T, opts ...ContextOption) *WorkingContext {
	t.Helper()
	wc, err := NewWorkingContext("a.json", "b.json", opts...)
	if err != nil {
		t.Fatal(err)
	}
	return wc
}

func TestCheckKeys(t *testing.T) {
	cases := []struct {
		description string
		a, b        string
		sameOrder   bool
		expect      []KeyDiff
	}{
		{"identical", `{"a":1,"b":{"c":[1]}}`, `{"a":1,"b":{"c":[1]}}`, false, nil},
		{"missing in b", `{"a":1,"b":2}`, `{"a":1}`, false, []KeyDiff{
			{Path: "b", PresentOn: SideA, MissingOn: SideB},
		}},
		{"missing in a", `{"a":1}`, `{"a":1,"b":2}`, false, []KeyDiff{
			{Path: "b", PresentOn: SideB, MissingOn: SideA},
		}},
		{"nested", `{"n":{"x":1,"y":true}}`, `{"n":{"x":2,"z":null}}`, false, []KeyDiff{
			{Path: "n.y", PresentOn: SideA, MissingOn: SideB},
			{Path: "n.z", PresentOn: SideB, MissingOn: SideA},
		}},
		{"whole subtree missing reports its root", `{"n":{"y":true}}`, `{}`, false, []KeyDiff{
			{Path: "n", PresentOn: SideA, MissingOn: SideB},
		}},
		{"type mismatch is not a key diff", `{"a":{"x":1}}`, `{"a":[1]}`, false, nil},
		{"a's missing keys precede b's", `{"a":1,"c":{"d":1}}`, `{"b":1,"c":{"e":1}}`, false, []KeyDiff{
			{Path: "a", PresentOn: SideA, MissingOn: SideB},
			{Path: "c.d", PresentOn: SideA, MissingOn: SideB},
			{Path: "c.e", PresentOn: SideB, MissingOn: SideA},
			{Path: "b", PresentOn: SideB, MissingOn: SideA},
		}},
		{"array elements in order", `{"l":[{"a":1},{"b":2}]}`, `{"l":[{"a":1},{"c":2}]}`, true, []KeyDiff{
			{Path: "l[1].b", PresentOn: SideA, MissingOn: SideB},
			{Path: "l[1].c", PresentOn: SideB, MissingOn: SideA},
		}},
		{"array elements without order", `{"l":[{"a":1},{"b":2}]}`, `{"l":[{"a":1},{"c":2}]}`, false, nil},
		{"array lengths differ", `{"l":[{"a":1}]}`, `{"l":[{"b":1},{"c":2}]}`, true, nil},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			wc := testContext(t, OptionArraySameOrder(c.sameOrder))
			got := CheckKeys("", mustNode(t, c.a), mustNode(t, c.b), wc)
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("key diffs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckTypes(t *testing.T) {
	cases := []struct {
		description string
		a, b        string
		sameOrder   bool
		expect      []TypeDiff
	}{
		{"identical", `{"a":1}`, `{"a":2}`, false, nil},
		{"scalar types", `{"a":1,"b":"x","c":null}`, `{"a":"1","b":true,"c":null}`, false, []TypeDiff{
			{Path: "a", TypeA: NTNumber, TypeB: NTString},
			{Path: "b", TypeA: NTString, TypeB: NTBool},
		}},
		{"null against value", `{"a":null}`, `{"a":"x"}`, false, []TypeDiff{
			{Path: "a", TypeA: NTNull, TypeB: NTString},
		}},
		{"compound types", `{"d":[1]}`, `{"d":{"e":1}}`, false, []TypeDiff{
			{Path: "d", TypeA: NTArray, TypeB: NTObject},
		}},
		{"below a matching parent", `{"n":{"m":{"x":1}}}`, `{"n":{"m":{"x":[1]}}}`, false, []TypeDiff{
			{Path: "n.m.x", TypeA: NTNumber, TypeB: NTArray},
		}},
		{"missing keys aren't typed", `{"a":1}`, `{"b":"x"}`, false, nil},
		{"ordered array elements", `{"l":[1,"x"]}`, `{"l":[1,2]}`, true, []TypeDiff{
			{Path: "l[1]", TypeA: NTString, TypeB: NTNumber},
		}},
		{"unordered array elements", `{"l":[1,"x"]}`, `{"l":[1,2]}`, false, nil},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			wc := testContext(t, OptionArraySameOrder(c.sameOrder))
			got := CheckTypes("", mustNode(t, c.a), mustNode(t, c.b), wc)
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("type diffs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckValues(t *testing.T) {
	cases := []struct {
		description string
		a, b        string
		sameOrder   bool
		expect      []ValueDiff
	}{
		{"identical", `{"a":1,"b":"x"}`, `{"a":1.0,"b":"x"}`, false, nil},
		{"scalars", `{"a":1,"b":"x","c":true}`, `{"a":2,"b":"y","c":false}`, false, []ValueDiff{
			{Path: "a", ValueA: "1", ValueB: "2"},
			{Path: "b", ValueA: `"x"`, ValueB: `"y"`},
			{Path: "c", ValueA: "true", ValueB: "false"},
		}},
		{"integer and exponent notation", `{"a":1000000000000000}`, `{"a":1e15}`, false, nil},
		{"integer past float precision", `{"a":100000000000000000000}`, `{"a":1e20}`, false, nil},
		{"signed exponent", `{"a":-1000000000000000}`, `{"a":-1.0E+15}`, false, nil},
		{"fraction notation", `{"a":0.25}`, `{"a":2.5e-1}`, false, nil},
		{"large integers that differ", `{"a":1000000000000000}`, `{"a":1000000000000001}`, false, []ValueDiff{
			{Path: "a", ValueA: "1000000000000000", ValueB: "1000000000000001"},
		}},
		{"different types aren't values", `{"a":1}`, `{"a":"1"}`, false, nil},
		{"only shared keys", `{"a":1,"n":{"x":1}}`, `{"b":2,"n":{"x":3}}`, false, []ValueDiff{
			{Path: "n.x", ValueA: "1", ValueB: "3"},
		}},
		{"ordered arrays", `{"a":[1,2,3]}`, `{"a":[1,5,3]}`, true, []ValueDiff{
			{Path: "a[1]", ValueA: "2", ValueB: "5"},
		}},
		{"unordered arrays", `{"a":[1,2,3]}`, `{"a":[1,5,3]}`, false, nil},
		{"ordered arrays of different length", `{"a":[1,2,3]}`, `{"a":[1,5]}`, true, nil},
		{"nested ordered arrays", `{"a":[[1,2],[3]]}`, `{"a":[[2,1],[4,3]]}`, true, []ValueDiff{
			{Path: "a[0][0]", ValueA: "1", ValueB: "2"},
			{Path: "a[0][1]", ValueA: "2", ValueB: "1"},
		}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			wc := testContext(t, OptionArraySameOrder(c.sameOrder))
			got := CheckValues("", mustNode(t, c.a), mustNode(t, c.b), wc)
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("value diffs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckArrays(t *testing.T) {
	cases := []struct {
		description string
		a, b        string
		opts        []ContextOption
		expect      []ArrayDiff
	}{
		{"same contents, different order", `{"a":[1,2,3]}`, `{"a":[3,1,2]}`, nil, nil},
		{"ordered equal length is left to values", `{"a":[1,2,3]}`, `{"a":[1,5,3]}`,
			[]ContextOption{OptionArraySameOrder(true)}, nil},
		{"ordered different length", `{"a":[1,2,3]}`, `{"a":[1,2]}`,
			[]ContextOption{OptionArraySameOrder(true)}, []ArrayDiff{
				{Path: "a", Desc: AHas, Value: "3"},
				{Path: "a", Desc: BMisses, Value: "3"},
			}},
		{"multiset", `{"arr":[1,2,3,4,5,6,7]}`, `{"arr":[5,7,3,11,5,2,1]}`, nil, []ArrayDiff{
			{Path: "arr", Desc: AHas, Value: "4"},
			{Path: "arr", Desc: AHas, Value: "6"},
			{Path: "arr", Desc: AMisses, Value: "11"},
			{Path: "arr", Desc: AMisses, Value: "5"},
			{Path: "arr", Desc: BHas, Value: "11"},
			{Path: "arr", Desc: BHas, Value: "5"},
			{Path: "arr", Desc: BMisses, Value: "4"},
			{Path: "arr", Desc: BMisses, Value: "6"},
		}},
		{"membership", `{"arr":[1,2,3,4,5,6,7]}`, `{"arr":[5,7,3,11,5,2,1]}`,
			[]ContextOption{OptionArrayMatching(MatchMembership)}, []ArrayDiff{
				{Path: "arr", Desc: AHas, Value: "4"},
				{Path: "arr", Desc: AHas, Value: "6"},
				{Path: "arr", Desc: AMisses, Value: "11"},
				{Path: "arr", Desc: BHas, Value: "11"},
				{Path: "arr", Desc: BMisses, Value: "4"},
				{Path: "arr", Desc: BMisses, Value: "6"},
			}},
		{"duplicates matched by multiplicity", `{"a":["x","x"]}`, `{"a":["x"]}`, nil, []ArrayDiff{
			{Path: "a", Desc: AHas, Value: `"x"`},
			{Path: "a", Desc: BMisses, Value: `"x"`},
		}},
		{"compound elements ignore key order", `{"a":[{"x":1,"y":2}]}`, `{"a":[{"y":2,"x":1},{"z":3}]}`, nil, []ArrayDiff{
			{Path: "a", Desc: AMisses, Value: `{"z":3}`},
			{Path: "a", Desc: BHas, Value: `{"z":3}`},
		}},
		{"type sensitive", `{"a":[1]}`, `{"a":["1"]}`, nil, []ArrayDiff{
			{Path: "a", Desc: AHas, Value: "1"},
			{Path: "a", Desc: AMisses, Value: `"1"`},
			{Path: "a", Desc: BHas, Value: `"1"`},
			{Path: "a", Desc: BMisses, Value: "1"},
		}},
		{"nested under ordered arrays", `{"a":[[3]]}`, `{"a":[[4,3]]}`,
			[]ContextOption{OptionArraySameOrder(true)}, []ArrayDiff{
				{Path: "a[0]", Desc: AMisses, Value: "4"},
				{Path: "a[0]", Desc: BHas, Value: "4"},
			}},
		{"arrays under objects", `{"n":{"l":[1]}}`, `{"n":{"l":[]}}`, nil, []ArrayDiff{
			{Path: "n.l", Desc: AHas, Value: "1"},
			{Path: "n.l", Desc: BMisses, Value: "1"},
		}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			wc := testContext(t, c.opts...)
			got := CheckArrays("", mustNode(t, c.a), mustNode(t, c.b), wc)
			if diff := cmp.Diff(c.expect, got); diff != "" {
				t.Errorf("array diffs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
