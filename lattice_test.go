package parattice_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/internal/testdict"
)

// searchIndexRecord is the relative-position view of a SearchIndexNode used
// by the golden test data below: text, start position, end position, and
// the trunk span the edge was offset from, all recoverable purely from the
// ordered dump without referencing a raw internal node ID.
type searchIndexRecord struct {
	text             string
	start, end       int
	offsetLo, offsetHi int
}

func toSearchIndexRecords(nodes []parattice.SearchIndexNode) []searchIndexRecord {
	records := make([]searchIndexRecord, 0, len(nodes))
	nodeID := 0
	for _, n := range nodes {
		nodeID += n.Increment
		records = append(records, searchIndexRecord{
			text:     n.Text,
			start:    nodeID - 1,
			end:      nodeID + n.Length - 1,
			offsetLo: n.Offset[0],
			offsetHi:    n.Offset[1],
		})
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.text != b.text {
			return a.text < b.text
		}
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end < b.end
		}
		if a.offsetLo != b.offsetLo {
			return a.offsetLo < b.offsetLo
		}
		return a.offsetHi < b.offsetHi
	})
	return records
}

func sortedRecords(recs ...searchIndexRecord) []searchIndexRecord {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.text != b.text {
			return a.text < b.text
		}
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end < b.end
		}
		if a.offsetLo != b.offsetLo {
			return a.offsetLo < b.offsetLo
		}
		return a.offsetHi < b.offsetHi
	})
	return recs
}

func TestPhraseIndex_GetLattice_DumpForSearchIndex(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)
	got := toSearchIndexRecords(lattice.DumpForSearchIndex())

	want := sortedRecords(
		searchIndexRecord{"造血", 0, 3, 0, 1}, searchIndexRecord{"blood", 0, 2, 0, 3}, searchIndexRecord{"血液", 0, 2, 0, 3}, searchIndexRecord{"hematopoietic", 0, 1, 0, 3},
		searchIndexRecord{"stem", 1, 4, 0, 3}, searchIndexRecord{"stem", 1, 6, 0, 4}, searchIndexRecord{"幹", 1, 10, 0, 4},
		searchIndexRecord{"rescue", 2, 11, 0, 4}, searchIndexRecord{"幹", 2, 7, 0, 3}, searchIndexRecord{"stem", 2, 5, 0, 3}, searchIndexRecord{"stem", 2, 6, 0, 4},
		searchIndexRecord{"stem", 3, 8, 1, 3}, searchIndexRecord{"幹", 3, 9, 1, 2}, searchIndexRecord{"幹", 3, 10, 1, 4}, searchIndexRecord{"救命", 3, 11, 1, 4}, searchIndexRecord{"rescue", 3, 11, 1, 4},
		searchIndexRecord{"cell", 4, 13, 0, 3}, searchIndexRecord{"cell", 5, 12, 0, 4}, searchIndexRecord{"cell", 5, 13, 0, 3}, searchIndexRecord{"cell", 6, 15, 0, 4}, searchIndexRecord{"細胞", 7, 13, 0, 3},
		searchIndexRecord{"cell", 8, 13, 1, 3}, searchIndexRecord{"cell", 8, 14, 1, 4}, searchIndexRecord{"細胞", 9, 13, 2, 3}, searchIndexRecord{"細胞", 9, 14, 2, 4}, searchIndexRecord{"細胞", 10, 15, 1, 4},
		searchIndexRecord{"transplant", 11, 16, 1, 4}, searchIndexRecord{"rescue", 12, 16, 0, 4}, searchIndexRecord{"救命", 12, 16, 0, 4}, searchIndexRecord{"移植", 13, 16, 3, 4},
		searchIndexRecord{"rescue", 14, 16, 1, 4}, searchIndexRecord{"transplantation", 15, 16, 0, 4},
	)

	assert.Equal(t, want, got)
}

func TestPhraseIndex_GetLattice_MaxDepthOne(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 1)
	got := toSearchIndexRecords(lattice.DumpForSearchIndex())

	want := sortedRecords(
		searchIndexRecord{"造血", 0, 3, 0, 1}, searchIndexRecord{"blood", 0, 1, 0, 3}, searchIndexRecord{"hematopoietic", 0, 2, 0, 3},
		searchIndexRecord{"rescue", 3, 6, 1, 4}, searchIndexRecord{"stem", 3, 7, 1, 3}, searchIndexRecord{"幹", 3, 8, 1, 2}, searchIndexRecord{"stem", 1, 4, 0, 3},
		searchIndexRecord{"stem", 2, 4, 0, 3}, searchIndexRecord{"stem", 2, 5, 0, 4}, searchIndexRecord{"cell", 7, 10, 1, 4}, searchIndexRecord{"cell", 7, 11, 1, 3},
		searchIndexRecord{"細胞", 8, 11, 2, 3}, searchIndexRecord{"cell", 4, 11, 0, 3}, searchIndexRecord{"cell", 5, 9, 0, 4}, searchIndexRecord{"transplant", 6, 12, 1, 4},
		searchIndexRecord{"rescue", 10, 12, 1, 4}, searchIndexRecord{"移植", 11, 12, 3, 4}, searchIndexRecord{"transplantation", 9, 12, 0, 4},
	)

	assert.Equal(t, want, got)
}

func TestLattice_ToBytes_RoundTrip(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)
	data := lattice.ToBytes()

	got, err := parattice.LatticeFromBytes(data)
	require.NoError(t, err)

	assert.True(t, lattice.Equal(&got), "round-tripped lattice did not match original")
}

func TestLatticeFromBytes_Truncated(t *testing.T) {
	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(t, err)

	lattice := idx.GetLattice(testdict.Sentence(), true, 10)
	data := lattice.ToBytes()

	_, err = parattice.LatticeFromBytes(data[:len(data)-1])
	assert.ErrorIs(t, err, parattice.ErrTruncatedData)
}

func TestNewPhraseIndex_RejectsEmptyGroup(t *testing.T) {
	_, err := parattice.NewPhraseIndex(parattice.Dictionary{{}})
	assert.ErrorIs(t, err, parattice.ErrEmptyGroup)
}

func TestNewPhraseIndex_RejectsEmptyPhrase(t *testing.T) {
	_, err := parattice.NewPhraseIndex(parattice.Dictionary{{{}}})
	assert.ErrorIs(t, err, parattice.ErrEmptyPhrase)
}
