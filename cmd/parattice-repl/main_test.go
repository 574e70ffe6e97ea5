package main

import (
	"io"
	"testing"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/internal/testdict"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	lines []string
	pos   int
}

func (f *fakeReader) ReadSentence() (string, error) {
	if f.pos >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.pos]
	f.pos++
	return line, nil
}

func TestRunREPL_LatticeAndSearchDoNotPanic(t *testing.T) {
	require := require.New(t)

	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(err)

	reader := &fakeReader{lines: []string{
		`lattice 造血 幹 細胞 移植`,
		`search 造血 幹 細胞 移植 -- 造血 幹 細胞 移植`,
		`dot 造血 幹 細胞 移植`,
		`groups`,
		`quit`,
	}}

	runREPL(idx, testdict.Dictionary(), reader, 80)
}

func TestRunREPL_UnknownCommandDoesNotPanic(t *testing.T) {
	require := require.New(t)

	idx, err := parattice.NewPhraseIndex(testdict.Dictionary())
	require.NoError(err)

	reader := &fakeReader{lines: []string{`bogus`, `quit`}}
	runREPL(idx, testdict.Dictionary(), reader, 80)
}

func TestParseLatticeFlags(t *testing.T) {
	require := require.New(t)

	shrink, depth, rest := parseLatticeFlags([]string{"--shrink", "--depth", "5", "a", "b"})
	require.True(shrink)
	require.Equal(5, depth)
	require.Equal([]string{"a", "b"}, rest)
}
