package parattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/internal/testdict"
)

func TestLattice_GetTrunkSpan(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	got, err := lattice.GetTrunkSpan([]parattice.PathEdge{{Token: "", Node: 1}, {Token: "stem", Node: 4}})
	require.NoError(t, err)
	assert.Equal(t, []parattice.PathEdge{
		{Token: "", Node: 0}, {Token: "hematopoietic", Node: 1}, {Token: "stem", Node: 4}, {Token: "cell", Node: 13},
	}, got)

	got, err = lattice.GetTrunkSpan([]parattice.PathEdge{{Token: "", Node: 3}, {Token: "rescue", Node: 11}})
	require.NoError(t, err)
	assert.Equal(t, []parattice.PathEdge{
		{Token: "", Node: 3}, {Token: "rescue", Node: 11}, {Token: "transplant", Node: 16},
	}, got)

	got, err = lattice.GetTrunkSpan([]parattice.PathEdge{{Token: "", Node: 15}, {Token: "transplantation", Node: 16}})
	require.NoError(t, err)
	assert.Equal(t, []parattice.PathEdge{
		{Token: "", Node: 0}, {Token: "hematopoietic", Node: 1}, {Token: "stem", Node: 6}, {Token: "cell", Node: 15}, {Token: "transplantation", Node: 16},
	}, got)
}

func TestLattice_GetTrunkSpan_EmptyPath(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	_, err = lattice.GetTrunkSpan(nil)
	assert.ErrorIs(t, err, parattice.ErrEmptyPath)
}

func TestLattice_GetTrunkSpan_NodeOutOfRange(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	_, err = lattice.GetTrunkSpan([]parattice.PathEdge{{Token: "", Node: lattice.Size() + 5}})
	assert.ErrorIs(t, err, parattice.ErrNodeOutOfRange)
}

func TestLattice_DumpDOT_ContainsExpectedTokens(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)

	dot := lattice.DumpDOT(true)
	assert.Contains(t, dot, "digraph { graph [rankdir=LR];")
	assert.Contains(t, dot, `label="造血"`)
	assert.Contains(t, dot, "#ff0000")
	assert.Contains(t, dot, "#0000ff")
}
