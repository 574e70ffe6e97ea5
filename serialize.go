package parattice

import (
	"unicode/utf8"
)

// ToBytes encodes the lattice to the engine's fixed little-endian flat
// binary format:
//
//	u64 node_count
//	for each node:
//	    u64 num_forwards
//	    u64 num_backwards
//	    if num_forwards > 0:
//	        encode(forward_main)
//	        for each other forward edge (set order): encode(edge)
//	    if num_backwards > 0:
//	        encode(backward_main)
//	        for each other backward edge (set order): encode(edge)
//
// where encode(edge) = u64 byte_length; raw UTF-8 bytes; u64 target.
func (l *Lattice) ToBytes() []byte {
	var out []byte
	out = appendU64(out, uint64(len(l.Nodes)))

	for _, n := range l.Nodes {
		out = appendU64(out, uint64(len(n.Forwards)))
		out = appendU64(out, uint64(len(n.Backwards)))

		if len(n.Forwards) > 0 {
			out = appendEdge(out, *n.ForwardMain)
			for _, e := range n.Forwards {
				if e != *n.ForwardMain {
					out = appendEdge(out, e)
				}
			}
		}
		if len(n.Backwards) > 0 {
			out = appendEdge(out, *n.BackwardMain)
			for _, e := range n.Backwards {
				if e != *n.BackwardMain {
					out = appendEdge(out, e)
				}
			}
		}
	}

	return out
}

func appendU64(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

func appendEdge(b []byte, e Edge) []byte {
	b = appendU64(b, uint64(len(e.Token)))
	b = append(b, e.Token...)
	b = appendU64(b, uint64(e.Node))
	return b
}

func readU64(data []byte, offset int) (uint64, error) {
	if offset+8 > len(data) {
		return 0, ErrTruncatedData
	}
	v := uint64(data[offset]) |
		uint64(data[offset+1])<<8 |
		uint64(data[offset+2])<<16 |
		uint64(data[offset+3])<<24 |
		uint64(data[offset+4])<<32 |
		uint64(data[offset+5])<<40 |
		uint64(data[offset+6])<<48 |
		uint64(data[offset+7])<<56
	return v, nil
}

// LatticeFromBytes reconstructs a Lattice previously produced by
// (*Lattice).ToBytes. Every node's Depth is reset to 0; Trunk and
// Capacity are recomputed from the decoded edge sets. The returned
// Lattice owns its token bytes. Deserialization validates the buffer is
// not truncated, that every edge count and byte length is consistent
// with the remaining data, that token bytes are valid UTF-8, and that
// every node ID referenced by an edge is in range.
func LatticeFromBytes(data []byte) (Lattice, error) {
	nodeCountU64, err := readU64(data, 0)
	if err != nil {
		return Lattice{}, err
	}
	nodeCount := int(nodeCountU64)
	offset := 8

	nodes := make([]*LatticeNode, nodeCount)
	for i := range nodes {
		nodes[i] = &LatticeNode{}
	}

	for i := 0; i < nodeCount; i++ {
		numForwardsU64, err := readU64(data, offset)
		if err != nil {
			return Lattice{}, err
		}
		numBackwardsU64, err := readU64(data, offset+8)
		if err != nil {
			return Lattice{}, err
		}
		numForwards := int(numForwardsU64)
		numBackwards := int(numBackwardsU64)
		offset += 16

		if numForwards > 0 {
			var mainEdge Edge
			mainEdge, offset, err = decodeEdge(data, offset, nodeCount)
			if err != nil {
				return Lattice{}, err
			}
			forwards := []Edge{mainEdge}
			for k := 1; k < numForwards; k++ {
				var e Edge
				e, offset, err = decodeEdge(data, offset, nodeCount)
				if err != nil {
					return Lattice{}, err
				}
				forwards = insertEdgeSorted(forwards, e)
			}
			nodes[i].Forwards = forwards
			nodes[i].ForwardMain = &mainEdge
		}

		if numBackwards > 0 {
			var mainEdge Edge
			mainEdge, offset, err = decodeEdge(data, offset, nodeCount)
			if err != nil {
				return Lattice{}, err
			}
			backwards := []Edge{mainEdge}
			for k := 1; k < numBackwards; k++ {
				var e Edge
				e, offset, err = decodeEdge(data, offset, nodeCount)
				if err != nil {
					return Lattice{}, err
				}
				backwards = insertEdgeSorted(backwards, e)
			}
			nodes[i].Backwards = backwards
			nodes[i].BackwardMain = &mainEdge
		}
	}

	if offset != len(data) {
		return Lattice{}, ErrInconsistentCounts
	}

	return Lattice{
		Nodes:    nodes,
		Trunk:    computeTrunk(nodes),
		Capacity: computeCapacity(nodes),
	}, nil
}

func decodeEdge(data []byte, offset int, nodeCount int) (Edge, int, error) {
	strLenU64, err := readU64(data, offset)
	if err != nil {
		return Edge{}, 0, err
	}
	strLen := int(strLenU64)
	offset += 8

	if offset+strLen > len(data) {
		return Edge{}, 0, ErrTruncatedData
	}
	tokenBytes := data[offset : offset+strLen]
	if !utf8.Valid(tokenBytes) {
		return Edge{}, 0, ErrInvalidUTF8
	}
	token := string(tokenBytes)
	offset += strLen

	targetU64, err := readU64(data, offset)
	if err != nil {
		return Edge{}, 0, err
	}
	offset += 8

	target := int(targetU64)
	if target < 0 || target >= nodeCount {
		return Edge{}, 0, ErrNodeOutOfRange
	}

	return Edge{Token: token, Node: target}, offset, nil
}
