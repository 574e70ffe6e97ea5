package parattice

// SearchIndexNode is a single flattened edge record suitable for ingestion
// into an inverted index (e.g. Elasticsearch/Lucene-style position
// increments).
type SearchIndexNode struct {
	Text      string
	Offset    [2]int // (trunk position start, trunk position end)
	Increment int    // 1 for the first edge out of a node, else 0
	Length    int    // target node ID - source node ID
}

// Capacity returns the total edge count of the lattice (same value as the
// Lattice.Capacity field; provided as a method for parity with Size).
func (l *Lattice) CapacityOf() int {
	return l.Capacity
}

// GetTrunkSpan extends path backward (by following BackwardMain from its
// first node until a trunk node is reached) and forward (by following
// ForwardMain from its last node until a trunk node is reached), returning
// the fully-extended path. path must be non-empty and every node ID in it
// must be in range.
func (l *Lattice) GetTrunkSpan(path []PathEdge) ([]PathEdge, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	for _, e := range path {
		if e.Node < 0 || e.Node >= len(l.Nodes) {
			return nil, ErrNodeOutOfRange
		}
	}

	newPath := make([]PathEdge, len(path))
	copy(newPath, path)

	edgeBW := newPath[0]
	newPath = newPath[1:]
	for {
		if _, ok := l.Trunk[edgeBW.Node]; ok {
			break
		}
		next := l.Nodes[edgeBW.Node].BackwardMain
		newPath = append([]PathEdge{{Token: next.Token, Node: edgeBW.Node}}, newPath...)
		edgeBW = *next
	}
	newPath = append([]PathEdge{{Token: "", Node: edgeBW.Node}}, newPath...)

	edgeFW := newPath[len(newPath)-1]
	for {
		if _, ok := l.Trunk[edgeFW.Node]; ok {
			break
		}
		edgeFW = *l.Nodes[edgeFW.Node].ForwardMain
		newPath = append(newPath, edgeFW)
	}

	return newPath, nil
}

// GetTrunkSpans computes, for every node, the trunk positions of the
// nearest trunk node reachable backward (left) and forward (right) via
// the main-edge chain each non-trunk node was spliced from.
func (l *Lattice) GetTrunkSpans() [][2]int {
	n := len(l.Nodes)
	leftTrunks := make([]int, n)
	rightTrunks := make([]int, n)
	for i := range rightTrunks {
		rightTrunks[i] = n - 1
	}
	for nodeID := range l.Trunk {
		leftTrunks[nodeID] = nodeID
		rightTrunks[nodeID] = nodeID
	}

	for nodeID := 1; nodeID < n-1; nodeID++ {
		for _, e := range l.Nodes[nodeID].Forwards {
			if leftTrunks[e.Node] == 0 && l.Nodes[e.Node].BackwardMain != nil && l.Nodes[e.Node].BackwardMain.Node == nodeID {
				leftTrunks[e.Node] = leftTrunks[nodeID]
			}
		}
	}
	for nodeID := n - 2; nodeID >= 1; nodeID-- {
		for _, e := range l.Nodes[nodeID].Backwards {
			if rightTrunks[e.Node] == n-1 && l.Nodes[e.Node].ForwardMain != nil && l.Nodes[e.Node].ForwardMain.Node == nodeID {
				rightTrunks[e.Node] = rightTrunks[nodeID]
			}
		}
	}

	result := make([][2]int, n)
	for i := 0; i < n; i++ {
		result[i] = [2]int{l.Trunk[leftTrunks[i]], l.Trunk[rightTrunks[i]]}
	}
	return result
}

// DumpForSearchIndex flattens the lattice into an ordered list of
// SearchIndexNode records, one per outgoing edge of every non-sink node.
func (l *Lattice) DumpForSearchIndex() []SearchIndexNode {
	trunkSpans := l.GetTrunkSpans()
	result := make([]SearchIndexNode, 0, l.Capacity)

	for i := 0; i < len(l.Nodes)-1; i++ {
		for j, e := range l.Nodes[i].Forwards {
			increment := 0
			if j == 0 {
				increment = 1
			}
			result = append(result, SearchIndexNode{
				Text:      e.Token,
				Offset:    [2]int{trunkSpans[i][0], trunkSpans[e.Node][1]},
				Increment: increment,
				Length:    e.Node - i,
			})
		}
	}

	return result
}
