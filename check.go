package dtf

// CheckKeys reports keys present on only one side. It recurses through object
// pairs, and through array pairs index-wise when the context compares them in
// order. At each object pair keys of a missing from b are reported in a's
// order, shared keys are recursed into, then keys of b missing from a are
// reported in b's order. A shared key holding values of different types is
// not a key difference
func CheckKeys(path string, a, b *Node, wc *WorkingContext) []KeyDiff {
	var diffs []KeyDiff
	checkKeys(path, a, b, wc, &diffs)
	return diffs
}

func checkKeys(path string, a, b *Node, wc *WorkingContext, diffs *[]KeyDiff) {
	switch {
	case a.Type() == NTObject && b.Type() == NTObject:
		seen := make(map[string]bool, len(a.keys))
		for _, key := range a.keys {
			p := KeyPath(path, key)
			bv, ok := b.fields[key]
			if !ok {
				*diffs = append(*diffs, KeyDiff{Path: p, PresentOn: SideA, MissingOn: SideB})
				continue
			}
			seen[key] = true
			checkKeys(p, a.fields[key], bv, wc, diffs)
		}
		for _, key := range b.keys {
			if !seen[key] {
				*diffs = append(*diffs, KeyDiff{Path: KeyPath(path, key), PresentOn: SideB, MissingOn: SideA})
			}
		}
	case a.Type() == NTArray && b.Type() == NTArray:
		if wc.sameOrderPair(a.items, b.items) {
			for i := range a.items {
				checkKeys(IndexPath(path, i), a.items[i], b.items[i], wc, diffs)
			}
		}
	}
}

// CheckTypes reports every location defined by both sides where the values
// have different types
func CheckTypes(path string, a, b *Node, wc *WorkingContext) []TypeDiff {
	var diffs []TypeDiff
	walkPairs(path, a, b, wc, func(p string, a, b *Node) {
		if a.Type() != b.Type() {
			diffs = append(diffs, TypeDiff{Path: p, TypeA: a.Type(), TypeB: b.Type()})
		}
	})
	return diffs
}

// CheckValues reports scalars of the same type whose canonical renderings
// differ. Arrays that aren't compared index-wise are left to CheckArrays
func CheckValues(path string, a, b *Node, wc *WorkingContext) []ValueDiff {
	var diffs []ValueDiff
	walkPairs(path, a, b, wc, func(p string, a, b *Node) {
		if a.Type() != b.Type() || !a.IsScalar() {
			return
		}
		av, _ := a.Scalar()
		bv, _ := b.Scalar()
		if av != bv {
			diffs = append(diffs, ValueDiff{Path: p, ValueA: av, ValueB: bv})
		}
	})
	return diffs
}

// CheckArrays reports array contents without a counterpart on the other side.
// Array pairs compared index-wise produce nothing here, their elements are
// covered by the type & value checkers. Every other array pair is compared as
// a collection of canonical element renderings
func CheckArrays(path string, a, b *Node, wc *WorkingContext) []ArrayDiff {
	var diffs []ArrayDiff
	walkPairs(path, a, b, wc, func(p string, a, b *Node) {
		if a.Type() != NTArray || b.Type() != NTArray || wc.sameOrderPair(a.items, b.items) {
			return
		}
		diffs = append(diffs, arrayDiffs(p, a.items, b.items, wc.ArrayMatching)...)
	})
	return diffs
}

// walkPairs calls fn for every location defined by both sides in top-down
// (prefix) order over a's structure. It descends into shared object keys, and
// into array elements only for arrays compared index-wise
func walkPairs(path string, a, b *Node, wc *WorkingContext, fn func(path string, a, b *Node)) {
	fn(path, a, b)
	switch {
	case a.Type() == NTObject && b.Type() == NTObject:
		for _, key := range a.keys {
			if bv, ok := b.fields[key]; ok {
				walkPairs(KeyPath(path, key), a.fields[key], bv, wc, fn)
			}
		}
	case a.Type() == NTArray && b.Type() == NTArray:
		if wc.sameOrderPair(a.items, b.items) {
			for i := range a.items {
				walkPairs(IndexPath(path, i), a.items[i], b.items[i], wc, fn)
			}
		}
	}
}

// arrayDiffs computes the symmetric difference of two arrays over canonical
// element renderings, emitted in the order AHas, AMisses, BHas, BMisses
func arrayDiffs(path string, a, b []*Node, m ArrayMatching) []ArrayDiff {
	as := renderAll(a)
	bs := renderAll(b)
	aOnly := unmatched(as, bs, m)
	bOnly := unmatched(bs, as, m)

	if len(aOnly) == 0 && len(bOnly) == 0 {
		return nil
	}

	diffs := make([]ArrayDiff, 0, 2*(len(aOnly)+len(bOnly)))
	for _, v := range aOnly {
		diffs = append(diffs, ArrayDiff{Path: path, Desc: AHas, Value: v})
	}
	for _, v := range bOnly {
		diffs = append(diffs, ArrayDiff{Path: path, Desc: AMisses, Value: v})
	}
	for _, v := range bOnly {
		diffs = append(diffs, ArrayDiff{Path: path, Desc: BHas, Value: v})
	}
	for _, v := range aOnly {
		diffs = append(diffs, ArrayDiff{Path: path, Desc: BMisses, Value: v})
	}
	return diffs
}

func renderAll(items []*Node) []string {
	strs := make([]string, len(items))
	for i, it := range items {
		strs[i] = it.String()
	}
	return strs
}

// unmatched lists, in order, the elements of from without a counterpart in
// other
func unmatched(from, other []string, m ArrayMatching) []string {
	counts := make(map[string]int, len(other))
	for _, s := range other {
		counts[s]++
	}

	var res []string
	for _, s := range from {
		if counts[s] > 0 {
			if m == MatchMultiset {
				counts[s]--
			}
			continue
		}
		res = append(res, s)
	}
	return res
}
