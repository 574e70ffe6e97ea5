package parattice

import (
	"fmt"
	"strings"
)

// DumpDOT renders the lattice as a GraphViz DOT digraph with rankdir=LR.
// Each lattice node is a small point (or, when isNumbered is true, its ID
// as plaintext); each edge is expanded into its own box-shaped label node
// so that an edge's token can carry its own visual identity. The stub
// leading into an edge-box is colored red when that edge is its source
// node's ForwardMain; the stub leaving an edge-box is colored blue when
// that edge is its target node's BackwardMain.
func (l *Lattice) DumpDOT(isNumbered bool) string {
	var b strings.Builder
	b.WriteString("digraph { graph [rankdir=LR];\n")

	for i, node := range l.Nodes {
		if isNumbered {
			fmt.Fprintf(&b, "\"%d\" [label=\"%d\",shape=plaintext,width=\"0.1\"];\n", i, i)
		} else {
			fmt.Fprintf(&b, "\"%d\" [label=\"\",shape=circle,width=\"0.1\"];\n", i)
		}

		for j, edge := range node.Forwards {
			fmt.Fprintf(&b, "\"%d-%d-%d\" [label=\"%s\",shape=box];\n", i, j, edge.Node, edge.Token)

			if node.ForwardMain != nil && edge == *node.ForwardMain {
				fmt.Fprintf(&b, "\"%d\" -> \"%d-%d-%d\" [arrowhead=none,color=\"#ff0000\"];\n", i, i, j, edge.Node)
			} else {
				fmt.Fprintf(&b, "\"%d\" -> \"%d-%d-%d\" [arrowhead=none];\n", i, i, j, edge.Node)
			}

			target := l.Nodes[edge.Node]
			if target.BackwardMain != nil && *target.BackwardMain == (Edge{Token: edge.Token, Node: i}) {
				fmt.Fprintf(&b, "\"%d-%d-%d\" -> \"%d\" [color=\"#0000ff\"];\n", i, j, edge.Node, edge.Node)
			} else {
				fmt.Fprintf(&b, "\"%d-%d-%d\" -> \"%d\";\n", i, j, edge.Node, edge.Node)
			}
		}
	}

	b.WriteString("}")
	return b.String()
}
