package parattice

// PathEdge is one entry of a path returned by Searcher.Search or passed to
// Lattice.GetTrunkSpan: a token paired with the lattice node it arrives at
// (or, for the synthetic leading sentinel, an empty token paired with the
// node the path starts from).
type PathEdge = Edge

// Searcher recovers every lattice path spelling a fixed pattern of tokens,
// using a KMP failure table adapted to the branching structure of a
// Lattice. A Searcher is immutable after construction.
type Searcher struct {
	pattern  []string
	cpattern []int
}

// NewSearcher builds the KMP failure table for pattern in the standard
// manner.
func NewSearcher(pattern []string) *Searcher {
	cpattern := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		j := cpattern[i-1]
		for j > 0 && pattern[j] != pattern[i] {
			j = cpattern[j-1]
		}
		if pattern[j] == pattern[i] {
			j++
		}
		cpattern[i] = j
	}
	return &Searcher{pattern: pattern, cpattern: cpattern}
}

// candidateKey renders a candidate path into a comparable string so that
// previously-seen candidates (by content, not identity) are not re-queued.
func candidateKey(c []PathEdge) string {
	var b []byte
	for _, e := range c {
		b = append(b, e.Token...)
		b = append(b, 0)
		b = appendInt(b, e.Node)
		b = append(b, 0)
	}
	return string(b)
}

// Search runs a breadth-first scan over (lattice node, matched-prefix
// length) pairs, each carrying a trailing candidate path (with a
// synthetic leading sentinel (" ", node-id) recording where the path
// currently begins), and returns every distinct path spelling the
// pattern.
func (s *Searcher) Search(l *Lattice) [][]PathEdge {
	if len(s.pattern) == 0 {
		return nil
	}

	addedCandidates := map[string]bool{}

	type item struct {
		node, j int
	}

	queue := []item{{0, 0}}
	candidates := [][]PathEdge{{{Token: "", Node: 0}}}

	var results [][]PathEdge

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		candidate := candidates[0]
		candidates = candidates[1:]

		node := l.Nodes[cur.node]
		if node.ForwardMain == nil {
			continue
		}

		for _, edge := range node.Forwards {
			j := cur.j
			for j > 0 && edge.Token != s.pattern[j] {
				j = s.cpattern[j-1]
			}
			if edge.Token == s.pattern[j] {
				j++
			}

			newCandidate := []PathEdge{edge}
			k := len(candidate)
			for len(newCandidate) < j {
				k--
				newCandidate = append([]PathEdge{candidate[k]}, newCandidate...)
			}
			newCandidate = append([]PathEdge{{Token: "", Node: candidate[k-1].Node}}, newCandidate...)

			if j == len(s.pattern) {
				match := make([]PathEdge, len(newCandidate))
				copy(match, newCandidate)
				results = append(results, match)

				j = s.cpattern[j-1]
				for len(newCandidate) > j+1 {
					newCandidate = newCandidate[1:]
				}
			}

			key := candidateKey(newCandidate)
			if !addedCandidates[key] {
				addedCandidates[key] = true
				queue = append(queue, item{edge.Node, j})
				candidates = append(candidates, newCandidate)
			}
		}
	}

	return results
}
