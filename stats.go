package dtf

// Stats holds statistical metadata about a comparison
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	Keys   int `json:"keys,omitempty"`   // number of key differences
	Types  int `json:"types,omitempty"`  // number of type differences
	Values int `json:"values,omitempty"` // number of value differences
	Arrays int `json:"arrays,omitempty"` // number of array differences
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// Total returns the number of differences across all categories
func (s Stats) Total() int {
	return s.Keys + s.Types + s.Values + s.Arrays
}

func (s *Stats) calc(a, b *Node, dc *DiffCollection) {
	s.Left = a.Count()
	s.Right = b.Count()
	s.Keys = len(dc.Keys)
	s.Types = len(dc.Types)
	s.Values = len(dc.Values)
	s.Arrays = len(dc.Arrays)
}
