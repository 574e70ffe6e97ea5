package parattice

import (
	"github.com/dekarrin/parattice/internal/util"
)

// Phrase is a non-empty sequence of tokens.
type Phrase []string

// Group is a sequence of mutually-paraphrastic Phrases.
type Group []Phrase

// Dictionary is an ordered sequence of Groups; this is the input to
// NewPhraseIndex.
type Dictionary []Group

type phraseEntry struct {
	tokens  []string
	groupID int
}

// PhraseIndex is the compiled form of a Dictionary: an Aho-Corasick
// automaton over all of its phrases, ready to drive repeated calls to
// GetLattice. A PhraseIndex is immutable after construction and may be
// shared across any number of concurrent GetLattice calls.
type PhraseIndex struct {
	pma     *pma
	phrases []phraseEntry

	// dict maps a group ID to the phrase IDs it contains, in declaration
	// order.
	dict [][]int
}

// NewPhraseIndex compiles dict into a PhraseIndex. It fails if any group is
// empty or any phrase within a group is empty.
func NewPhraseIndex(dict Dictionary) (*PhraseIndex, error) {
	var allPhrases [][]string
	var entries []phraseEntry
	var groupMembers [][]int

	for _, group := range dict {
		if len(group) == 0 {
			return nil, ErrEmptyGroup
		}
		var members []int
		for _, phrase := range group {
			if len(phrase) == 0 {
				return nil, ErrEmptyPhrase
			}
			phraseID := len(entries)
			entries = append(entries, phraseEntry{tokens: []string(phrase), groupID: len(groupMembers)})
			allPhrases = append(allPhrases, []string(phrase))
			members = append(members, phraseID)
		}
		groupMembers = append(groupMembers, members)
	}

	return &PhraseIndex{
		pma:     buildPMA(allPhrases),
		phrases: entries,
		dict:    groupMembers,
	}, nil
}

// branchKey identifies a previously-spliced paraphrase branch by the group
// it belongs to and the trunk span it was attached across, preventing the
// same group from being expanded redundantly at the same trunk positions.
type branchKey struct {
	group      int
	trunkStart int
	trunkEnd   int
}

// GetLattice builds the paraphrase lattice for words: a linear chain seeded
// with the sentence, then expanded by repeatedly splicing in paraphrases
// found via the compiled automaton, bounded by maxDepth. If shrink is
// true, a structural shrink pass runs before the final topological
// re-index.
func (pi *PhraseIndex) GetLattice(words []string, shrink bool, maxDepth int) Lattice {
	var nodes []*LatticeNode
	stateIDCache := make([]util.KeySet[int], 0)

	if len(words) == 0 {
		nodes = append(nodes, newNode(nil, nil, 0))
		stateIDCache = append(stateIDCache, util.NewKeySet[int]())
	} else {
		nodes = append(nodes, newNode(&Edge{Token: words[0], Node: 1}, nil, 0))
		stateIDCache = append(stateIDCache, util.NewKeySet[int]())
		for i := 1; i < len(words); i++ {
			nodes = append(nodes, newNode(
				&Edge{Token: words[i], Node: i + 1},
				&Edge{Token: words[i-1], Node: i - 1},
				0,
			))
			stateIDCache = append(stateIDCache, util.NewKeySet[int]())
		}
		nodes = append(nodes, newNode(nil, &Edge{Token: words[len(words)-1], Node: len(words) - 1}, 0))
		stateIDCache = append(stateIDCache, util.NewKeySet[int]())
	}

	eos := len(words)
	insertedBranches := util.NewKeySet[branchKey]()

	type frontier struct {
		node, state int
	}
	queue := []frontier{{0, 0}}
	stateIDCache[0].Add(0)

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		node, state := item.node, item.state

		for _, edge := range nodes[node].Forwards {
			newState := pi.pma.next(state, edge.Token)
			if !stateIDCache[edge.Node].Has(newState) {
				queue = append(queue, frontier{edge.Node, newState})
				stateIDCache[edge.Node].Add(newState)
			}
		}

		for _, phraseID := range pi.pma.states[state].matched {
			entry := pi.phrases[phraseID]
			groupID := entry.groupID
			trunkEnd := mainBranchFw(nodes, node, eos)

			for _, bm := range backwardMatch(entry.tokens, nodes, node, maxDepth) {
				branchStart, depth := bm.node, bm.depth
				trunkStart := mainBranchBw(nodes, branchStart, eos)

				key := branchKey{group: groupID, trunkStart: trunkStart, trunkEnd: trunkEnd}
				if insertedBranches.Has(key) {
					continue
				}
				insertedBranches.Add(key)

				for _, paraphraseID := range pi.dict[groupID] {
					if paraphraseID == phraseID {
						continue
					}
					paraphrase := pi.phrases[paraphraseID].tokens

					insertedFirstNodeID := insertBranch(&nodes, &stateIDCache, paraphrase, branchStart, node, depth+1)

					for cachedState := range stateIDCache[branchStart] {
						newState := pi.pma.next(cachedState, paraphrase[0])
						if !stateIDCache[insertedFirstNodeID].Has(newState) {
							queue = append(queue, frontier{insertedFirstNodeID, newState})
							stateIDCache[insertedFirstNodeID].Add(newState)
						}
					}
				}
			}
		}
	}

	if shrink {
		shrinkLattice(nodes)
	}

	newNodes := indexLeftToRight(nodes)

	return Lattice{
		Nodes:    newNodes,
		Trunk:    computeTrunk(newNodes),
		Capacity: computeCapacity(newNodes),
	}
}

// mainBranchBw walks backward_main from begin while its node ID is
// strictly greater than eos (i.e. while it is not yet a trunk node, using
// the "node ID <= eos means trunk" correspondence that holds only before
// the topological re-index pass).
func mainBranchBw(nodes []*LatticeNode, begin, eos int) int {
	b := begin
	for b > eos {
		b = nodes[b].BackwardMain.Node
	}
	return b
}

// mainBranchFw is the forward analogue of mainBranchBw.
func mainBranchFw(nodes []*LatticeNode, end, eos int) int {
	e := end
	for e > eos {
		e = nodes[e].ForwardMain.Node
	}
	return e
}

type backwardMatchResult struct {
	node  int
	depth int
}

// backwardMatch walks backwards along Backwards edges spelling phrase in
// reverse, starting at pos, admissible only through nodes whose Depth is
// less than maxDepth. Every successful walk yields the node ID where the
// phrase's first token originates, paired with the maximum depth observed
// along that walk.
func backwardMatch(phrase []string, nodes []*LatticeNode, pos int, maxDepth int) []backwardMatchResult {
	var result []backwardMatchResult

	type item struct {
		phrasePos int
		node      int
		depth     int
	}
	var queue []item
	if nodes[pos].Depth < maxDepth {
		queue = append(queue, item{len(phrase), pos, nodes[pos].Depth})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.phrasePos == 0 {
			result = append(result, backwardMatchResult{node: cur.node, depth: cur.depth})
			continue
		}

		target := phrase[cur.phrasePos-1]
		for _, edge := range nodes[cur.node].Backwards {
			if edge.Token == target && nodes[edge.Node].Depth < maxDepth {
				d := cur.depth
				if nodes[edge.Node].Depth > d {
					d = nodes[edge.Node].Depth
				}
				queue = append(queue, item{cur.phrasePos - 1, edge.Node, d})
			}
		}
	}

	return result
}

// insertBranch splices phrase in as a new branch running from startNodeID
// to endNodeID at the given depth, creating len(phrase)-1 fresh
// intermediate nodes with consecutive IDs. It returns the ID of the first
// node of the branch as seen going forward from startNodeID (which is
// startNodeID itself only when phrase has a single token, in which case no
// new node is created at all).
//
// The phrase-length case split (1 / 2 / 3 / N) mirrors the reference
// construction exactly, including its node-numbering.
func insertBranch(nodesPtr *[]*LatticeNode, cachePtr *[]util.KeySet[int], phrase []string, startNodeID, endNodeID, depth int) int {
	nodes := *nodesPtr
	newNodeID := len(nodes)

	switch len(phrase) {
	case 1:
		nodes[startNodeID].insertForward(phrase[0], endNodeID)
		nodes[endNodeID].insertBackward(phrase[0], startNodeID)
		*nodesPtr = nodes
		return endNodeID

	case 2:
		nodes[startNodeID].insertForward(phrase[0], newNodeID)
		nodes = append(nodes, newNode(
			&Edge{Token: phrase[1], Node: endNodeID},
			&Edge{Token: phrase[0], Node: startNodeID},
			depth,
		))
		*cachePtr = append(*cachePtr, util.NewKeySet[int]())
		nodes[endNodeID].insertBackward(phrase[1], newNodeID)
		*nodesPtr = nodes
		return newNodeID

	case 3:
		nodes[startNodeID].insertForward(phrase[0], newNodeID)
		nodes = append(nodes, newNode(
			&Edge{Token: phrase[1], Node: newNodeID + 1},
			&Edge{Token: phrase[0], Node: startNodeID},
			depth,
		))
		*cachePtr = append(*cachePtr, util.NewKeySet[int]())
		nodes = append(nodes, newNode(
			&Edge{Token: phrase[2], Node: endNodeID},
			&Edge{Token: phrase[1], Node: newNodeID},
			depth,
		))
		*cachePtr = append(*cachePtr, util.NewKeySet[int]())
		nodes[endNodeID].insertBackward(phrase[2], newNodeID+1)
		*nodesPtr = nodes
		return newNodeID

	default:
		nodes[startNodeID].insertForward(phrase[0], newNodeID)
		nodes = append(nodes, newNode(
			&Edge{Token: phrase[1], Node: newNodeID + 1},
			&Edge{Token: phrase[0], Node: startNodeID},
			depth,
		))
		*cachePtr = append(*cachePtr, util.NewKeySet[int]())

		for i := 0; i < len(phrase)-3; i++ {
			nodes = append(nodes, newNode(
				&Edge{Token: phrase[i+2], Node: newNodeID + i + 2},
				&Edge{Token: phrase[i+1], Node: newNodeID + i},
				depth,
			))
			*cachePtr = append(*cachePtr, util.NewKeySet[int]())
		}

		nodes = append(nodes, newNode(
			&Edge{Token: phrase[len(phrase)-1], Node: endNodeID},
			&Edge{Token: phrase[len(phrase)-2], Node: newNodeID + len(phrase) - 3},
			depth,
		))
		*cachePtr = append(*cachePtr, util.NewKeySet[int]())
		nodes[endNodeID].insertBackward(phrase[len(phrase)-1], newNodeID+len(phrase)-2)
		*nodesPtr = nodes
		return newNodeID
	}
}
