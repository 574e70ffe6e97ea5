package parattice

// edgeSetKey renders a sorted edge slice into a comparable map key, since
// Go does not allow slices as map keys directly. Nodes sharing an edge-set
// key have identical provenance (same Backwards, or same Forwards) and are
// candidates for merging.
func edgeSetKey(edges []Edge) string {
	// edges are always kept sorted, so two equal sets render identically.
	var b []byte
	for _, e := range edges {
		b = append(b, e.Token...)
		b = append(b, 0)
		b = appendInt(b, e.Node)
		b = append(b, 0)
	}
	return string(b)
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, digits[i:]...)
}

// shrinkLattice runs the iterative fixed-point merge described in spec.md
// 4.D: nodes sharing an identical Backwards set are merged (all but the
// first collapse into the first), then symmetrically for Forwards sets,
// repeating until no further merge is possible. Dirty tracking for the two
// directions is kept separate, since a backwards-merge can expose new
// forwards-mergeable pairs among common successors and vice versa.
func shrinkLattice(nodes []*LatticeNode) {
	dirtyBW := make(map[int]bool, len(nodes))
	dirtyFW := make(map[int]bool, len(nodes))
	for i := range nodes {
		dirtyBW[i] = true
		dirtyFW[i] = true
	}

	for len(dirtyBW) > 0 || len(dirtyFW) > 0 {
		// --- merge on shared Backwards sets ---
		groups := map[string][]int{}
		for i := range dirtyBW {
			if len(nodes[i].Backwards) > 0 {
				key := edgeSetKey(nodes[i].Backwards)
				groups[key] = append(groups[key], i)
			}
		}
		dirtyBW = map[int]bool{}

		for _, group := range sortedGroupKeys(groups) {
			ids := groups[group]
			if len(ids) < 2 {
				continue
			}
			sortInts(ids)
			survivor := ids[0]
			for _, dup := range ids[1:] {
				backward := nodes[dup].Backwards
				nodes[dup].Backwards = nil
				for _, e := range backward {
					prev := nodes[e.Node]
					prev.Forwards = removeEdgeSorted(prev.Forwards, Edge{Token: e.Token, Node: dup})
					if prev.ForwardMain != nil && *prev.ForwardMain == (Edge{Token: e.Token, Node: dup}) {
						prev.ForwardMain = &Edge{Token: e.Token, Node: survivor}
					}
				}
				forward := nodes[dup].Forwards
				nodes[dup].Forwards = nil
				for _, e := range forward {
					next := nodes[e.Node]
					next.Backwards = removeEdgeSorted(next.Backwards, Edge{Token: e.Token, Node: dup})
					next.Backwards = insertEdgeSorted(next.Backwards, Edge{Token: e.Token, Node: survivor})
					if next.BackwardMain != nil && *next.BackwardMain == (Edge{Token: e.Token, Node: dup}) {
						next.BackwardMain = &Edge{Token: e.Token, Node: survivor}
					}
					nodes[survivor].Forwards = insertEdgeSorted(nodes[survivor].Forwards, Edge{Token: e.Token, Node: e.Node})
				}
			}
			dirtyBW[survivor] = true
			for _, e := range nodes[survivor].Forwards {
				dirtyBW[e.Node] = true
			}
		}

		// --- merge on shared Forwards sets ---
		groups = map[string][]int{}
		for i := range dirtyFW {
			if len(nodes[i].Forwards) > 0 {
				key := edgeSetKey(nodes[i].Forwards)
				groups[key] = append(groups[key], i)
			}
		}
		dirtyFW = map[int]bool{}

		for _, group := range sortedGroupKeys(groups) {
			ids := groups[group]
			if len(ids) < 2 {
				continue
			}
			sortInts(ids)
			survivor := ids[0]
			for _, dup := range ids[1:] {
				forward := nodes[dup].Forwards
				nodes[dup].Forwards = nil
				for _, e := range forward {
					next := nodes[e.Node]
					next.Backwards = removeEdgeSorted(next.Backwards, Edge{Token: e.Token, Node: dup})
					if next.BackwardMain != nil && *next.BackwardMain == (Edge{Token: e.Token, Node: dup}) {
						next.BackwardMain = &Edge{Token: e.Token, Node: survivor}
					}
				}
				backward := nodes[dup].Backwards
				nodes[dup].Backwards = nil
				for _, e := range backward {
					prev := nodes[e.Node]
					prev.Forwards = removeEdgeSorted(prev.Forwards, Edge{Token: e.Token, Node: dup})
					prev.Forwards = insertEdgeSorted(prev.Forwards, Edge{Token: e.Token, Node: survivor})
					if prev.ForwardMain != nil && *prev.ForwardMain == (Edge{Token: e.Token, Node: dup}) {
						prev.ForwardMain = &Edge{Token: e.Token, Node: survivor}
					}
					nodes[survivor].Backwards = insertEdgeSorted(nodes[survivor].Backwards, Edge{Token: e.Token, Node: e.Node})
				}
			}
			dirtyFW[survivor] = true
			for _, e := range nodes[survivor].Backwards {
				dirtyFW[e.Node] = true
			}
		}
	}
}

func sortedGroupKeys(groups map[string][]int) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
