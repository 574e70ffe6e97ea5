// Package dictconf loads paraphrase dictionaries from TOML files on disk,
// for use by the REPL and other offline tooling that does not go through
// the server's API.
package dictconf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/parattice"
)

// groupDoc is the on-disk shape of a single group of mutually-paraphrastic
// phrases.
type groupDoc struct {
	Phrases [][]string `toml:"phrases"`
}

// fileDoc is the top-level shape of a dictionary TOML file: a sequence of
// groups, each a sequence of phrases, each a sequence of tokens.
type fileDoc struct {
	Groups []groupDoc `toml:"groups"`
}

// Load reads the dictionary TOML file at path and decodes it into a
// parattice.Dictionary.
func Load(path string) (parattice.Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return Unmarshal(data)
}

// Unmarshal decodes TOML-encoded dictionary data into a
// parattice.Dictionary.
func Unmarshal(data []byte) (parattice.Dictionary, error) {
	var doc fileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	dict := make(parattice.Dictionary, len(doc.Groups))
	for i, g := range doc.Groups {
		group := make(parattice.Group, len(g.Phrases))
		for j, p := range g.Phrases {
			group[j] = parattice.Phrase(p)
		}
		dict[i] = group
	}

	return dict, nil
}

// Marshal encodes dict into its on-disk TOML representation.
func Marshal(dict parattice.Dictionary) ([]byte, error) {
	doc := fileDoc{Groups: make([]groupDoc, len(dict))}
	for i, group := range dict {
		phrases := make([][]string, len(group))
		for j, p := range group {
			phrases[j] = []string(p)
		}
		doc.Groups[i] = groupDoc{Phrases: phrases}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
