package graph

import (
	"github.com/pkg/errors"
)

// Ego extracts the induced subgraph of all nodes within hops of center,
// remapped into a fresh, compact index space. Reachability is
// direction-agnostic: each directed edge contributes to both endpoints'
// neighbor lists. hops = 0 yields only the center. The returned graph does
// not share index space with its parent and must not be merged back without
// remapping; the center is always index 0.
func Ego(g *Graph, center, hops int) (*Graph, error) {
	if center < 0 || center >= len(g.Nodes) {
		return nil, errors.Errorf("ego center %d out of range [0, %d)", center, len(g.Nodes))
	}

	adjacency := make(map[int][]int)
	for _, e := range g.Edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjacency[e.To] = append(adjacency[e.To], e.From)
	}

	// BFS: expand the frontier exactly hops times; membership is "BFS
	// distance ≤ hops". Visitation order keeps the result deterministic.
	included := map[int]bool{center: true}
	order := []int{center}
	frontier := []int{center}
	for h := 0; h < hops; h++ {
		var next []int
		for _, node := range frontier {
			for _, neighbor := range adjacency[node] {
				if included[neighbor] {
					continue
				}
				included[neighbor] = true
				order = append(order, neighbor)
				next = append(next, neighbor)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}

	ego := &Graph{
		BuildID:   g.BuildID,
		Nodes:     make([]Node, 0, len(order)),
		nameIndex: make(map[string]int, len(order)),
	}
	remap := make(map[int]int, len(order))
	for newIdx, oldIdx := range order {
		remap[oldIdx] = newIdx
		node := g.Nodes[oldIdx]
		ego.nameIndex[node.Name] = newIdx
		ego.Nodes = append(ego.Nodes, node)
	}

	for _, e := range g.Edges {
		from, okFrom := remap[e.From]
		to, okTo := remap[e.To]
		if okFrom && okTo {
			ego.Edges = append(ego.Edges, Edge{From: from, To: to})
		}
	}

	return ego, nil
}
