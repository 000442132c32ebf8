package dtf

import (
	"encoding/json"
	"fmt"
)

// Category names one kind of difference
type Category uint8

const (
	// CatKey reports keys present on only one side
	CatKey Category = iota
	// CatType reports locations where both sides hold values of different types
	CatType
	// CatValue reports scalars of the same type that differ
	CatValue
	// CatArray reports array elements without a counterpart on the other side
	CatArray
)

// AllCategories lists every category in reporting order
var AllCategories = []Category{CatKey, CatType, CatValue, CatArray}

func (c Category) String() string {
	switch c {
	case CatKey:
		return "key"
	case CatType:
		return "type"
	case CatValue:
		return "value"
	case CatArray:
		return "array"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory reads a category name as produced by Category.String
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown diff category %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if c > CatArray {
		return nil, fmt.Errorf("invalid diff category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Categories is a set of diff categories
type Categories uint8

// NewCategories creates a set holding cats
func NewCategories(cats ...Category) Categories {
	var set Categories
	for _, c := range cats {
		set |= 1 << c
	}
	return set
}

// Has reports whether c is in the set
func (cs Categories) Has(c Category) bool {
	return cs&(1<<c) != 0
}

// List returns the set's members in reporting order
func (cs Categories) List() []Category {
	var cats []Category
	for _, c := range AllCategories {
		if cs.Has(c) {
			cats = append(cats, c)
		}
	}
	return cats
}

// Empty is true if no category is in the set
func (cs Categories) Empty() bool {
	return cs == 0
}

// MarshalJSON encodes the set as a list of category names
func (cs Categories) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, c := range cs.List() {
		names = append(names, c.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of category names
func (cs *Categories) UnmarshalJSON(data []byte) error {
	var cats []Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return err
	}
	*cs = NewCategories(cats...)
	return nil
}

// Side identifies one of the two compared documents
type Side uint8

const (
	// SideA is the first document passed to Compare
	SideA Side = iota
	// SideB is the second document passed to Compare
	SideB
)

func (s Side) String() string {
	if s == SideB {
		return "b"
	}
	return "a"
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideB {
		return SideA
	}
	return SideB
}

// Label resolves the caller supplied name for this side
func (s Side) Label(wc *WorkingContext) string {
	if wc == nil {
		return s.String()
	}
	if s == SideB {
		return wc.SideB
	}
	return wc.SideA
}

// MarshalText implements encoding.TextMarshaler
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "a":
		*s = SideA
	case "b":
		*s = SideB
	default:
		return fmt.Errorf("unknown side %q", string(text))
	}
	return nil
}

// KeyDiff records a key that is present on one side only. It says nothing
// about the shape of the value held under the key
type KeyDiff struct {
	Path      string `json:"path"`
	PresentOn Side   `json:"presentOn"`
	MissingOn Side   `json:"missingOn"`
}

// TypeDiff records a location both sides define, holding values of different
// types
type TypeDiff struct {
	Path  string   `json:"path"`
	TypeA NodeType `json:"typeA"`
	TypeB NodeType `json:"typeB"`
}

// ValueDiff records two scalars of the same type with differing canonical
// renderings
type ValueDiff struct {
	Path   string `json:"path"`
	ValueA string `json:"valueA"`
	ValueB string `json:"valueB"`
}

// ArrayDiffDesc describes an array element's membership from one side's point
// of view
type ArrayDiffDesc uint8

const (
	// AHas marks an element of A with no counterpart in B
	AHas ArrayDiffDesc = iota
	// AMisses marks an element of B that A lacks, mirrors BHas
	AMisses
	// BHas marks an element of B with no counterpart in A
	BHas
	// BMisses marks an element of A that B lacks, mirrors AHas
	BMisses
)

func (d ArrayDiffDesc) String() string {
	switch d {
	case AHas:
		return "aHas"
	case AMisses:
		return "aMisses"
	case BHas:
		return "bHas"
	case BMisses:
		return "bMisses"
	}
	return fmt.Sprintf("ArrayDiffDesc(%d)", uint8(d))
}

// MarshalText implements encoding.TextMarshaler
func (d ArrayDiffDesc) MarshalText() ([]byte, error) {
	if d > BMisses {
		return nil, fmt.Errorf("invalid array diff descriptor %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *ArrayDiffDesc) UnmarshalText(text []byte) error {
	for desc := AHas; desc <= BMisses; desc++ {
		if desc.String() == string(text) {
			*d = desc
			return nil
		}
	}
	return fmt.Errorf("unknown array diff descriptor %q", string(text))
}

// ArrayDiff is one multiset-membership fact about an array pair
type ArrayDiff struct {
	Path  string        `json:"path"`
	Desc  ArrayDiffDesc `json:"desc"`
	Value string        `json:"value"`
}

// DiffCollection is the result of comparing two documents. Each category is
// independently present or absent: a category that wasn't checked is absent,
// which is not the same as checked with no differences found
type DiffCollection struct {
	Checked Categories  `json:"checked"`
	Keys    []KeyDiff   `json:"keys,omitempty"`
	Types   []TypeDiff  `json:"types,omitempty"`
	Values  []ValueDiff `json:"values,omitempty"`
	Arrays  []ArrayDiff `json:"arrays,omitempty"`
}

// KeyDiffs returns key differences. ok is false if keys weren't checked
func (dc *DiffCollection) KeyDiffs() (diffs []KeyDiff, ok bool) {
	if dc == nil || !dc.Checked.Has(CatKey) {
		return nil, false
	}
	return dc.Keys, true
}

// TypeDiffs returns type differences. ok is false if types weren't checked
func (dc *DiffCollection) TypeDiffs() (diffs []TypeDiff, ok bool) {
	if dc == nil || !dc.Checked.Has(CatType) {
		return nil, false
	}
	return dc.Types, true
}

// ValueDiffs returns value differences. ok is false if values weren't checked
func (dc *DiffCollection) ValueDiffs() (diffs []ValueDiff, ok bool) {
	if dc == nil || !dc.Checked.Has(CatValue) {
		return nil, false
	}
	return dc.Values, true
}

// ArrayDiffs returns array differences. ok is false if arrays weren't checked
func (dc *DiffCollection) ArrayDiffs() (diffs []ArrayDiff, ok bool) {
	if dc == nil || !dc.Checked.Has(CatArray) {
		return nil, false
	}
	return dc.Arrays, true
}

// Len counts records across all categories
func (dc *DiffCollection) Len() int {
	if dc == nil {
		return 0
	}
	return len(dc.Keys) + len(dc.Types) + len(dc.Values) + len(dc.Arrays)
}

// GroupArrayDiffs groups array differences by path, keeping the order in
// which paths first appear
func GroupArrayDiffs(diffs []ArrayDiff) (paths []string, groups map[string][]ArrayDiff) {
	groups = map[string][]ArrayDiff{}
	for _, d := range diffs {
		if _, ok := groups[d.Path]; !ok {
			paths = append(paths, d.Path)
		}
		groups[d.Path] = append(groups[d.Path], d)
	}
	return paths, groups
}
