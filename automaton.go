package parattice

// pmaNode is a single state of the Aho-Corasick phrase-matching automaton
// (PMA) built over a paraphrase dictionary. Edges are keyed by token; Fail
// is the state to fall back to when no edge matches the current token;
// Matched holds the IDs of every phrase whose pattern ends at this state,
// including those inherited through the fail chain (suffix closure).
type pmaNode struct {
	edges   map[string]int
	fail    int
	matched []int
}

func newPMANode() *pmaNode {
	return &pmaNode{edges: make(map[string]int)}
}

// pma is the Aho-Corasick automaton built once from a dictionary's
// phrases. State 0 is the root.
type pma struct {
	states []*pmaNode
}

// buildPMA inserts every phrase into a trie keyed by token, then performs a
// breadth-first pass computing fail links and the suffix closure of
// matched phrase IDs, exactly as the standard Aho-Corasick construction
// does.
func buildPMA(phrases [][]string) *pma {
	a := &pma{states: []*pmaNode{newPMANode()}}

	for phraseID, phrase := range phrases {
		nodeID := 0
		for _, word := range phrase {
			next, ok := a.states[nodeID].edges[word]
			if !ok {
				next = len(a.states)
				a.states[nodeID].edges[word] = next
				a.states = append(a.states, newPMANode())
			}
			nodeID = next
		}
		a.states[nodeID].matched = append(a.states[nodeID].matched, phraseID)
	}

	var queue []int
	for _, next := range sortedEdgeTargets(a.states[0].edges) {
		queue = append(queue, next)
	}
	for len(queue) > 0 {
		nodeID := queue[0]
		queue = queue[1:]

		for c, next := range a.states[nodeID].edges {
			queue = append(queue, next)

			failID := nodeID
			for failID != 0 {
				failID = a.states[failID].fail
				if target, ok := a.states[failID].edges[c]; ok {
					failID = target
					break
				}
			}

			a.states[next].fail = failID
			a.states[next].matched = append(a.states[next].matched, a.states[failID].matched...)
		}
	}

	return a
}

// sortedEdgeTargets returns the targets of edges in a deterministic order
// so that construction (and thus state numbering beyond the trie itself)
// does not depend on Go's randomized map iteration order.
func sortedEdgeTargets(edges map[string]int) []int {
	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	// simple insertion sort is fine; dictionaries are small relative to a
	// single build call and this only needs to be deterministic, not fast.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	targets := make([]int, len(keys))
	for i, k := range keys {
		targets[i] = edges[k]
	}
	return targets
}

// next computes the PMA transition function: from state, while no outgoing
// edge for token exists and state is not the root, follow fail; returns
// the edge target if found, else 0.
func (a *pma) next(state int, token string) int {
	for {
		if target, ok := a.states[state].edges[token]; ok {
			return target
		}
		if state == 0 {
			return 0
		}
		state = a.states[state].fail
	}
}
