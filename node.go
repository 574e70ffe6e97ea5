package parattice

import "sort"

// Edge is a single directed word edge in a Lattice: the token spelled by
// the edge and the ID of the node it points at (for a forwards edge, the
// target; for a backwards edge, the source).
type Edge struct {
	Token string
	Node  int
}

// edgeLess orders edges lexicographically by (Token, Node), matching the
// ordering a Rust BTreeSet<(&str, usize)> gives its elements.
func edgeLess(a, b Edge) bool {
	if a.Token != b.Token {
		return a.Token < b.Token
	}
	return a.Node < b.Node
}

// LatticeNode is a single vertex of a Lattice. Forwards and Backwards are
// kept in sorted order at all times so that iteration order matches the
// ordered-set semantics the engine's construction and serialization
// algorithms depend on.
type LatticeNode struct {
	Forwards  []Edge
	Backwards []Edge

	ForwardMain  *Edge
	BackwardMain *Edge

	Depth int
}

// newNode constructs a LatticeNode with the given optional main edges and
// depth. A non-nil main edge is also inserted into the corresponding edge
// set, per invariant 3 (main edges are member edges).
func newNode(forwardMain, backwardMain *Edge, depth int) *LatticeNode {
	n := &LatticeNode{Depth: depth}
	if forwardMain != nil {
		fm := *forwardMain
		n.ForwardMain = &fm
		n.Forwards = append(n.Forwards, fm)
	}
	if backwardMain != nil {
		bm := *backwardMain
		n.BackwardMain = &bm
		n.Backwards = append(n.Backwards, bm)
	}
	return n
}

// insertForward adds a forwards edge to the node, idempotently, keeping
// Forwards sorted.
func (n *LatticeNode) insertForward(token string, target int) {
	n.Forwards = insertEdgeSorted(n.Forwards, Edge{Token: token, Node: target})
}

// insertBackward adds a backwards edge to the node, idempotently, keeping
// Backwards sorted.
func (n *LatticeNode) insertBackward(token string, source int) {
	n.Backwards = insertEdgeSorted(n.Backwards, Edge{Token: token, Node: source})
}

func insertEdgeSorted(edges []Edge, e Edge) []Edge {
	i := sort.Search(len(edges), func(i int) bool {
		return !edgeLess(edges[i], e)
	})
	if i < len(edges) && edges[i] == e {
		return edges
	}
	edges = append(edges, Edge{})
	copy(edges[i+1:], edges[i:])
	edges[i] = e
	return edges
}

// removeEdgeSorted removes e from a sorted edge slice, if present.
func removeEdgeSorted(edges []Edge, e Edge) []Edge {
	i := sort.Search(len(edges), func(i int) bool {
		return !edgeLess(edges[i], e)
	})
	if i < len(edges) && edges[i] == e {
		edges = append(edges[:i], edges[i+1:]...)
	}
	return edges
}
