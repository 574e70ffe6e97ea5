// Package testdict provides the worked medical-paraphrase dictionary used
// throughout this module's tests, the server's demo endpoint, and the
// REPL's --demo flag: a small bilingual (English/Japanese) set of groups
// built around the "hematopoietic stem cell transplantation" example.
package testdict

import "github.com/dekarrin/parattice"

// Dictionary returns a fresh copy of the worked example dictionary. It is
// a standalone function rather than a package-level value so that callers
// (particularly tests that run shrink/reindex, which mutate structures
// reachable from a Dictionary's Phrase slices) never share backing arrays
// across calls.
func Dictionary() parattice.Dictionary {
	return parattice.Dictionary{
		{
			{"blood", "stem", "cell"},
			{"造血", "幹", "細胞"},
			{"hematopoietic", "stem", "cell"},
		},
		{
			{"造血", "幹", "細胞", "移植"},
			{"hematopoietic", "stem", "cell", "transplantation"},
		},
		{
			{"stem", "cell"},
			{"幹", "細胞"},
		},
		{
			{"幹", "細胞", "移植"},
			{"rescue", "transplant"},
			{"stem", "cell", "rescue"},
		},
		{
			{"rescue"},
			{"救命"},
		},
		{
			{"blood"},
			{"血液"},
		},
	}
}

// Sentence returns the example input sentence the worked dictionary is
// built around: "造血幹細胞移植" (hematopoietic stem cell transplantation),
// pre-tokenized.
func Sentence() []string {
	return []string{"造血", "幹", "細胞", "移植"}
}
