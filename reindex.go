package parattice

// indexLeftToRight produces a topologically-ordered copy of nodes: a
// Kahn-style BFS from node 0 that releases a node into the output only
// once all of its inbound edges have been visited. Every edge and both
// main pointers are rewritten to the new numbering; depths are not
// preserved on the output copies (construction is finished by this
// point and nothing downstream reads node.Depth again for the returned
// Lattice).
func indexLeftToRight(nodes []*LatticeNode) []*LatticeNode {
	oldToNew := make([]int, len(nodes))
	var newToOld []int
	backwardCounter := make([]int, len(nodes))

	queue := []int{0}
	for len(queue) > 0 {
		nodeID := queue[0]
		queue = queue[1:]

		oldToNew[nodeID] = len(newToOld)
		newToOld = append(newToOld, nodeID)

		for _, e := range nodes[nodeID].Forwards {
			backwardCounter[e.Node]++
			if backwardCounter[e.Node] == len(nodes[e.Node].Backwards) {
				queue = append(queue, e.Node)
			}
		}
	}

	result := make([]*LatticeNode, 0, len(newToOld))
	for _, oldID := range newToOld {
		old := nodes[oldID]

		// Rebuild in sorted order: renumbering can change the relative
		// order of edges sharing a token, since ordering is by
		// (token, target) and targets are being renumbered.
		var forwards, backwards []Edge
		for _, e := range old.Forwards {
			forwards = insertEdgeSorted(forwards, Edge{Token: e.Token, Node: oldToNew[e.Node]})
		}
		for _, e := range old.Backwards {
			backwards = insertEdgeSorted(backwards, Edge{Token: e.Token, Node: oldToNew[e.Node]})
		}

		var fm, bm *Edge
		if old.ForwardMain != nil {
			fm = &Edge{Token: old.ForwardMain.Token, Node: oldToNew[old.ForwardMain.Node]}
		}
		if old.BackwardMain != nil {
			bm = &Edge{Token: old.BackwardMain.Token, Node: oldToNew[old.BackwardMain.Node]}
		}

		result = append(result, &LatticeNode{
			Forwards:     forwards,
			Backwards:    backwards,
			ForwardMain:  fm,
			BackwardMain: bm,
			Depth:        0,
		})
	}

	return result
}
