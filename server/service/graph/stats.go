package graph

import (
	"sort"
)

// Stats summarizes a built graph.
type Stats struct {
	NodeCount    int     `json:"node_count"`
	EdgeCount    int     `json:"edge_count"`
	OrphanCount  int     `json:"orphan_count"`
	ConnectedPct float64 `json:"connected_pct"`
}

// Stats computes summary statistics for the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}
	for _, n := range g.Nodes {
		if n.IsOrphan {
			s.OrphanCount++
		}
	}
	if s.NodeCount > 0 {
		s.ConnectedPct = float64(s.NodeCount-s.OrphanCount) / float64(s.NodeCount) * 100
	}
	return s
}

// Orphans returns the names of all orphan nodes, in index order.
func (g *Graph) Orphans() []string {
	var names []string
	for _, n := range g.Nodes {
		if n.IsOrphan {
			names = append(names, n.Name)
		}
	}
	return names
}

// Hub is a document ranked by its outgoing link count.
type Hub struct {
	Name     string `json:"name"`
	OutLinks int    `json:"out_links"`
}

// Hubs returns the documents with the most outgoing links, descending,
// ties broken by name. limit <= 0 returns all.
func Hubs(docs []Document, limit int) []Hub {
	hubs := make([]Hub, 0, len(docs))
	for _, doc := range docs {
		hubs = append(hubs, Hub{Name: doc.Name, OutLinks: len(doc.Links)})
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].OutLinks != hubs[j].OutLinks {
			return hubs[i].OutLinks > hubs[j].OutLinks
		}
		return hubs[i].Name < hubs[j].Name
	})
	if limit > 0 && limit < len(hubs) {
		hubs = hubs[:limit]
	}
	return hubs
}
