package dtf_test

import (
	"fmt"

	"github.com/qri-io/dtf"
	"github.com/qri-io/dtf/parse"
)

func ExampleCompare() {
	// start with two slightly different json documents
	aJSON := []byte(`{
		"a": 100,
		"foo": [1,2,3],
		"baz": {
			"a": {"b": 4},
			"e": null
		}
	}`)

	bJSON := []byte(`{
		"a": 99,
		"foo": [3,2,1,4],
		"baz": {
			"a": {"b": 5},
			"e": "x",
			"f": false
		}
	}`)

	a, err := parse.JSON(aJSON)
	if err != nil {
		panic(err)
	}
	b, err := parse.JSON(bJSON)
	if err != nil {
		panic(err)
	}

	// check every category, comparing arrays by content
	wc, err := dtf.NewWorkingContext("a.json", "b.json")
	if err != nil {
		panic(err)
	}

	stats := &dtf.Stats{}
	diffs := dtf.New(dtf.OptionSetStats(stats)).Compare(a, b, wc)

	// Format the changes for terminal output
	report, err := dtf.FormatPrettyString(diffs, wc, false)
	if err != nil {
		panic(err)
	}

	fmt.Print(report)
	fmt.Print(dtf.FormatPrettyStats(stats))
	// Output: keys: (1)
	//   + baz.f: only in b.json
	// types: (1)
	//   ~ baz.e: null (a.json) -> string (b.json)
	// values: (2)
	//   ~ a: 100 -> 99
	//   ~ baz.a.b: 4 -> 5
	// arrays: (2)
	//   foo:
	//     + 4 (only in b.json)
	// +2 elements. 1 key. 1 type. 2 values. 2 array elements.
}

func ExampleKeyPath() {
	p := dtf.KeyPath("", "nested")
	p = dtf.IndexPath(dtf.KeyPath(p, "array"), 2)
	fmt.Println(p)
	// Output: nested.array[2]
}
