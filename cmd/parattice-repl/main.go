/*
Parattice-repl is an interactive shell for exploring paraphrase lattices
built from a dictionary file loaded from disk, without needing to stand up
an HTTP server.

Usage:

	parattice-repl [flags] DICTIONARY_FILE

Once started, parattice-repl reads a dictionary TOML file and presents a
prompt at which commands can be entered. Each line is split the way a shell
would split it, so a sentence argument containing spaces must be quoted.

Commands:

	lattice [--shrink] [--depth N] SENTENCE
		Build the paraphrase lattice for SENTENCE and print a summary of
		its nodes, edges, and trunk.

	search [--shrink] [--depth N] SENTENCE -- PATTERN
		Build the lattice for SENTENCE and print every path that spells
		out PATTERN.

	dot [--shrink] [--depth N] SENTENCE
		Build the lattice for SENTENCE and print it in GraphViz DOT
		format.

	groups
		List each group of mutually-paraphrastic phrases in the loaded
		dictionary.

	quit
		Exit the REPL.

The flags are:

	-v, --version
		Give the current version of parattice-repl and then exit.

	-w, --width WIDTH
		Wrap descriptive output at the given column width. Defaults to 80.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/internal/dictconf"
	"github.com/dekarrin/parattice/internal/input"
	"github.com/dekarrin/parattice/internal/util"
	"github.com/dekarrin/parattice/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of parattice-repl and then exit.")
	flagWidth   = pflag.IntP("width", "w", 80, "Wrap descriptive output at the given column width.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("parattice-repl v%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: parattice-repl [flags] DICTIONARY_FILE\nDo -h for help.\n")
		os.Exit(1)
	}

	dict, err := dictconf.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load dictionary: %s\n", err.Error())
		os.Exit(1)
	}

	idx, err := parattice.NewPhraseIndex(dict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile dictionary: %s\n", err.Error())
		os.Exit(1)
	}

	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start REPL: %s\n", err.Error())
		os.Exit(1)
	}
	defer reader.Close()

	runREPL(idx, dict, reader, *flagWidth)
}

type replReader interface {
	ReadSentence() (string, error)
}

func runREPL(idx *parattice.PhraseIndex, dict parattice.Dictionary, reader replReader, width int) {
	for {
		line, err := reader.ReadSentence()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "read input: %s\n", err.Error())
			}
			return
		}

		args, err := shellquote.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse input: %s\n", err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}

		cmd := args[0]
		rest := args[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "lattice":
			runLattice(idx, rest, width)
		case "search":
			runSearch(idx, rest, width)
		case "dot":
			runDot(idx, rest)
		case "groups":
			runGroups(dict, width)
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		}
	}
}

func parseLatticeFlags(args []string) (shrink bool, maxDepth int, rest []string) {
	maxDepth = 10
	for len(args) > 0 {
		switch args[0] {
		case "--shrink":
			shrink = true
			args = args[1:]
		case "--depth":
			if len(args) < 2 {
				return shrink, maxDepth, args
			}
			if n, err := strconv.Atoi(args[1]); err == nil {
				maxDepth = n
			}
			args = args[2:]
		default:
			return shrink, maxDepth, args
		}
	}
	return shrink, maxDepth, args
}

func runLattice(idx *parattice.PhraseIndex, args []string, width int) {
	shrink, maxDepth, rest := parseLatticeFlags(args)
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: lattice [--shrink] [--depth N] SENTENCE...")
		return
	}

	lat := idx.GetLattice(rest, shrink, maxDepth)

	summary := fmt.Sprintf(
		"Built lattice for %q: %s nodes, %s edges.",
		joinTokens(rest),
		humanize.Comma(int64(lat.Size())),
		humanize.Comma(int64(lat.CapacityOf())),
	)
	fmt.Println(rosed.Edit(summary).Wrap(width).String())
}

func runSearch(idx *parattice.PhraseIndex, args []string, width int) {
	shrink, maxDepth, rest := parseLatticeFlags(args)

	sepIdx := -1
	for i, a := range rest {
		if a == "--" {
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 || sepIdx == 0 || sepIdx == len(rest)-1 {
		fmt.Fprintln(os.Stderr, "usage: search [--shrink] [--depth N] SENTENCE... -- PATTERN...")
		return
	}

	sentence := rest[:sepIdx]
	pattern := rest[sepIdx+1:]

	lat := idx.GetLattice(sentence, shrink, maxDepth)
	searcher := parattice.NewSearcher(pattern)
	paths := searcher.Search(&lat)

	if len(paths) == 0 {
		fmt.Println(rosed.Edit("No paths found.").Wrap(width).String())
		return
	}

	for i, path := range paths {
		var tokens []string
		for _, e := range path {
			tokens = append(tokens, e.Token)
		}
		fmt.Printf("%d: %s\n", i+1, joinTokens(tokens))
	}
}

func runDot(idx *parattice.PhraseIndex, args []string) {
	shrink, maxDepth, rest := parseLatticeFlags(args)
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: dot [--shrink] [--depth N] SENTENCE...")
		return
	}

	lat := idx.GetLattice(rest, shrink, maxDepth)
	fmt.Println(lat.DumpDOT(true))
}

func runGroups(dict parattice.Dictionary, width int) {
	if len(dict) == 0 {
		fmt.Println("Dictionary has no groups.")
		return
	}

	for i, group := range dict {
		phrases := make([]string, len(group))
		for j, p := range group {
			phrases[j] = joinTokens(p)
		}
		summary := fmt.Sprintf("Group %d: %s", i+1, util.MakeTextList(phrases))
		fmt.Println(rosed.Edit(summary).Wrap(width).String())
	}
}

func joinTokens(tokens []string) string {
	joined := ""
	for i, t := range tokens {
		if i > 0 {
			joined += " "
		}
		joined += t
	}
	return joined
}
