package dtf

import (
	"strings"
	"testing"
)

func TestFormatPretty(t *testing.T) {
	wc, err := NewWorkingContext("left.yaml", "right.yaml")
	if err != nil {
		t.Fatal(err)
	}
	dc := &DiffCollection{
		Checked: NewCategories(CatKey, CatArray),
		Keys: []KeyDiff{
			{Path: "a", PresentOn: SideA, MissingOn: SideB},
			{Path: "b.c", PresentOn: SideB, MissingOn: SideA},
		},
		Arrays: []ArrayDiff{
			{Path: "l", Desc: AHas, Value: `"x"`},
			{Path: "m", Desc: AMisses, Value: "2"},
			{Path: "l", Desc: BHas, Value: "1"},
			{Path: "m", Desc: BHas, Value: "2"},
			{Path: "l", Desc: BMisses, Value: `"x"`},
		},
	}

	got, err := FormatPrettyString(dc, wc, false)
	if err != nil {
		t.Fatal(err)
	}
	expect := `keys: (2)
  - a: only in left.yaml
  + b.c: only in right.yaml
arrays: (5)
  l:
    - "x" (only in left.yaml)
    + 1 (only in right.yaml)
  m:
    + 2 (only in right.yaml)
`
	if got != expect {
		t.Errorf("want:\n%s\ngot:\n%s", expect, got)
	}
}

func TestFormatPrettyEmptyCategories(t *testing.T) {
	wc, err := NewWorkingContext("a", "b", OptionCategories(CatType, CatValue))
	if err != nil {
		t.Fatal(err)
	}
	got, err := FormatPrettyString(&DiffCollection{Checked: wc.Categories}, wc, false)
	if err != nil {
		t.Fatal(err)
	}
	if expect := "types: (0)\nvalues: (0)\n"; got != expect {
		t.Errorf("want:\n%s\ngot:\n%s", expect, got)
	}
}

func TestFormatPrettyColor(t *testing.T) {
	wc, err := NewWorkingContext("a", "b")
	if err != nil {
		t.Fatal(err)
	}
	dc := &DiffCollection{
		Checked: NewCategories(CatValue),
		Values:  []ValueDiff{{Path: "x", ValueA: "1", ValueB: "2"}},
	}
	got, err := FormatPrettyString(dc, wc, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in colored output, got: %q", got)
	}
}

func TestFormatStatsPretty(t *testing.T) {
	cases := []struct {
		description string
		input       *Stats
		expect      string
	}{
		{"all plural",
			&Stats{Left: 2, Right: 6, Keys: 6, Types: 2, Values: 2, Arrays: 4},
			"+4 elements. 6 keys. 2 types. 2 values. 4 array elements.\n",
		},
		{"all singular",
			&Stats{Left: 2, Right: 1, Keys: 1, Types: 1, Values: 1, Arrays: 1},
			"-1 element. 1 key. 1 type. 1 value. 1 array element.\n",
		},
		{"no change, no arrays",
			&Stats{Left: 3, Right: 3},
			"0 elements. 0 keys. 0 types. 0 values.\n",
		},
	}

	for i, c := range cases {
		got := FormatPrettyStats(c.input)
		if got != c.expect {
			t.Errorf("%d %s\nwant:\n%s\ngot:\n%s", i, c.description, c.expect, got)
		}
	}
}

func TestFormatStatsNull(t *testing.T) {
	got := FormatPrettyStats(nil)
	expect := ``
	if got != expect {
		t.Errorf("want:\n%s\ngot:\n%s", expect, got)
	}
}
