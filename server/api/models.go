package api

import (
	"sort"
	"time"

	"github.com/dekarrin/parattice"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/dustin/go-humanize"
)

// DictionaryModel is the JSON representation of a dao.Dictionary returned
// to and accepted from API clients.
type DictionaryModel struct {
	URI      string               `json:"uri,omitempty"`
	ID       string               `json:"id,omitempty"`
	Name     string               `json:"name"`
	Groups   parattice.Dictionary `json:"groups"`
	Created  string               `json:"created,omitempty"`
	Modified string               `json:"modified,omitempty"`
}

func dictionaryToModel(d dao.Dictionary) DictionaryModel {
	return DictionaryModel{
		URI:      PathPrefix + "/dictionaries/" + d.ID.String(),
		ID:       d.ID.String(),
		Name:     d.Name,
		Groups:   d.Data,
		Created:  d.Created.Format(time.RFC3339),
		Modified: d.Modified.Format(time.RFC3339),
	}
}

// LatticeRequest is the JSON body accepted by the lattice-building and
// lattice-searching endpoints.
type LatticeRequest struct {
	Sentence []string `json:"sentence"`
	Shrink   bool     `json:"shrink"`
	MaxDepth int      `json:"max_depth"`
	Pattern  []string `json:"pattern,omitempty"`
}

// LatticeModel is the JSON representation of a built lattice.
type LatticeModel struct {
	NodeCount      int                `json:"node_count"`
	EdgeCount      int                `json:"edge_count"`
	HumanNodeCount string             `json:"human_node_count"`
	HumanEdgeCount string             `json:"human_edge_count"`
	Trunk          []trunkEntryModel  `json:"trunk"`
	Edges          []latticeEdgeModel `json:"edges"`
}

type trunkEntryModel struct {
	Node     int `json:"node"`
	Position int `json:"position"`
}

type latticeEdgeModel struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

func latticeToModel(l parattice.Lattice) LatticeModel {
	m := LatticeModel{
		NodeCount:      l.Size(),
		EdgeCount:      l.CapacityOf(),
		HumanNodeCount: humanize.Comma(int64(l.Size())),
		HumanEdgeCount: humanize.Comma(int64(l.CapacityOf())),
	}

	for node, pos := range l.Trunk {
		m.Trunk = append(m.Trunk, trunkEntryModel{Node: node, Position: pos})
	}
	sort.Slice(m.Trunk, func(i, j int) bool { return m.Trunk[i].Position < m.Trunk[j].Position })

	for from, node := range l.Nodes {
		for _, e := range node.Forwards {
			m.Edges = append(m.Edges, latticeEdgeModel{From: from, To: e.Node, Text: e.Token})
		}
	}

	return m
}

// SearchResultModel is the JSON representation of one path returned by a
// lattice search.
type SearchResultModel struct {
	Path []string `json:"path"`
}

func searchResultsToModel(paths [][]parattice.PathEdge) []SearchResultModel {
	models := make([]SearchResultModel, len(paths))
	for i, path := range paths {
		for _, e := range path {
			models[i].Path = append(models[i].Path, e.Token)
		}
	}
	return models
}
