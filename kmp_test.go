package parattice_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/internal/testdict"
)

func TestSearcher_Search(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	searcher := parattice.NewSearcher([]string{"幹", "細胞"})
	results := searcher.Search(&lattice)

	sort.Slice(results, func(i, j int) bool {
		return pathLess(results[i], results[j])
	})

	expected := [][]parattice.PathEdge{
		{{Token: "", Node: 1}, {Token: "幹", Node: 10}, {Token: "細胞", Node: 15}},
		{{Token: "", Node: 2}, {Token: "幹", Node: 7}, {Token: "細胞", Node: 13}},
		{{Token: "", Node: 3}, {Token: "幹", Node: 9}, {Token: "細胞", Node: 13}},
		{{Token: "", Node: 3}, {Token: "幹", Node: 9}, {Token: "細胞", Node: 14}},
		{{Token: "", Node: 3}, {Token: "幹", Node: 10}, {Token: "細胞", Node: 15}},
	}
	sort.Slice(expected, func(i, j int) bool {
		return pathLess(expected[i], expected[j])
	})

	assert.Equal(t, expected, results)
}

func pathLess(a, b []parattice.PathEdge) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Node != b[i].Node {
			return a[i].Node < b[i].Node
		}
		if a[i].Token != b[i].Token {
			return a[i].Token < b[i].Token
		}
	}
	return len(a) < len(b)
}

func TestSearcher_Search_EmptyPattern(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	searcher := parattice.NewSearcher(nil)
	assert.Empty(t, searcher.Search(&lattice))
}
