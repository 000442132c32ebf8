package dtf

import (
	"errors"
	"fmt"
)

// ErrNoCategories is returned when building a WorkingContext that would check
// nothing
var ErrNoCategories = errors.New("at least one diff category must be enabled")

// ArrayMatching decides when two array elements count as counterparts if
// arrays are compared by content rather than by index
type ArrayMatching uint8

const (
	// MatchMultiset matches elements one-to-one by multiplicity: a value held
	// twice by A and once by B leaves one unmatched copy in A
	MatchMultiset ArrayMatching = iota
	// MatchMembership matches an element if the other side holds any equal
	// element, ignoring multiplicity
	MatchMembership
)

func (m ArrayMatching) String() string {
	if m == MatchMembership {
		return "membership"
	}
	return "multiset"
}

// MarshalText implements encoding.TextMarshaler
func (m ArrayMatching) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ArrayMatching) UnmarshalText(text []byte) error {
	switch string(text) {
	case "multiset", "":
		*m = MatchMultiset
	case "membership":
		*m = MatchMembership
	default:
		return fmt.Errorf("unknown array matching %q", string(text))
	}
	return nil
}

// WorkingContext is the configuration of one comparison run. It is built once
// before comparing and never modified by the engine
type WorkingContext struct {
	// SideA & SideB are caller supplied labels for the two documents, usually
	// file names
	SideA string
	SideB string
	// ArraySameOrder declares both documents keep arrays in the same order.
	// Equal length arrays are then compared index-wise
	ArraySameOrder bool
	// ArrayMatching applies to arrays compared by content
	ArrayMatching ArrayMatching
	// Categories lists the kinds of difference to check for
	Categories Categories
}

// ContextOption adjusts a WorkingContext, zero or more ContextOptions can be
// passed to NewWorkingContext
type ContextOption func(wc *WorkingContext)

// OptionArraySameOrder sets whether arrays keep the same order on both sides
func OptionArraySameOrder(sameOrder bool) ContextOption {
	return func(wc *WorkingContext) {
		wc.ArraySameOrder = sameOrder
	}
}

// OptionArrayMatching sets the element matching policy for content compared
// arrays
func OptionArrayMatching(m ArrayMatching) ContextOption {
	return func(wc *WorkingContext) {
		wc.ArrayMatching = m
	}
}

// OptionCategories replaces the set of categories to check
func OptionCategories(cats ...Category) ContextOption {
	return func(wc *WorkingContext) {
		wc.Categories = NewCategories(cats...)
	}
}

// NewWorkingContext creates a validated context. By default all categories
// are checked, arrays are compared by content, and elements are matched as
// multisets
func NewWorkingContext(sideA, sideB string, opts ...ContextOption) (*WorkingContext, error) {
	wc := &WorkingContext{
		SideA:      sideA,
		SideB:      sideB,
		Categories: NewCategories(AllCategories...),
	}
	for _, opt := range opts {
		opt(wc)
	}
	if err := wc.Validate(); err != nil {
		return nil, err
	}
	return wc, nil
}

// Validate checks the context is usable for a comparison
func (wc *WorkingContext) Validate() error {
	if wc.Categories.Empty() {
		return ErrNoCategories
	}
	if wc.ArrayMatching > MatchMembership {
		return fmt.Errorf("invalid array matching %d", uint8(wc.ArrayMatching))
	}
	return nil
}

// sameOrderPair reports whether two arrays are compared index-wise
func (wc *WorkingContext) sameOrderPair(a, b []*Node) bool {
	return wc.ArraySameOrder && len(a) == len(b)
}
