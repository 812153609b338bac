// Package graph builds and serves the link graph of a note vault: typed
// nodes and edges, orphan classification, force-directed layout, and
// bounded-radius ego-network extraction.
package graph

import (
	"math"

	"github.com/lithammer/shortuuid/v4"

	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

// noteSuffix is the conventional file suffix links may be written with or
// without. Resolution and orphan counting check both variants.
const noteSuffix = ".md"

// initialRadiusScale controls the starting circle radius relative to
// sqrt(node count).
const initialRadiusScale = 5.0

// Document is one scanned note: a name plus its outbound link targets,
// already stripped of alias and anchor segments but not yet resolved
// against the document set.
type Document struct {
	Name  string
	Label string
	Links []string
}

// Node is one graph vertex.
type Node struct {
	Name     string  `json:"name"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsOrphan bool    `json:"is_orphan"`
}

// Edge is a directed pair of node indices. Parallel edges are preserved;
// repeated links act as repeated springs in the layout.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph owns the node and edge lists for one vault scan. Topology is
// immutable once built; only node positions mutate, via the Simulator.
type Graph struct {
	BuildID string `json:"build_id"`
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`

	nameIndex map[string]int
}

// Build constructs a Graph from the scanned document set. Documents are
// assigned zero-based indices in input order; links are resolved by exact
// name and then by name+suffix, and dangling links are dropped. A node is
// an orphan iff no other document's resolved links target it. When
// filterOrphans is set, orphan nodes and any edges touching them are
// excluded. An empty document set yields an empty, valid Graph.
func Build(docs []Document, filterOrphans bool) *Graph {
	g := &Graph{
		BuildID:   shortuuid.New(),
		nameIndex: make(map[string]int),
	}
	if len(docs) == 0 {
		return g
	}

	// Every name a link could resolve to, counting the suffix variant.
	incoming := make(map[string]struct{})
	for _, doc := range docs {
		for _, link := range doc.Links {
			incoming[link] = struct{}{}
			incoming[link+noteSuffix] = struct{}{}
		}
	}

	orphans := make(map[string]struct{})
	for _, doc := range docs {
		if _, ok := incoming[doc.Name]; !ok {
			orphans[doc.Name] = struct{}{}
		}
	}

	included := docs
	if filterOrphans {
		included = make([]Document, 0, len(docs))
		for _, doc := range docs {
			if _, ok := orphans[doc.Name]; !ok {
				included = append(included, doc)
			}
		}
	}

	// Place nodes evenly on a circle sized by sqrt(n). A literal
	// origin-collision start would make the repulsion force indeterminate
	// for zero-distance pairs.
	radius := math.Sqrt(float64(len(included))) * initialRadiusScale
	g.Nodes = make([]Node, 0, len(included))
	for i, doc := range included {
		angle := float64(i) / float64(len(included)) * 2 * math.Pi
		_, isOrphan := orphans[doc.Name]
		g.nameIndex[doc.Name] = i
		g.Nodes = append(g.Nodes, Node{
			Name:     doc.Name,
			Label:    doc.Label,
			X:        radius * math.Cos(angle),
			Y:        radius * math.Sin(angle),
			IsOrphan: isOrphan,
		})
	}

	// Resolution checks the full document set; the filtered name index
	// then drops edges touching excluded nodes.
	exists := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		exists[doc.Name] = struct{}{}
	}

	for _, doc := range docs {
		from, ok := g.nameIndex[doc.Name]
		if !ok {
			continue
		}
		for _, link := range doc.Links {
			target := link
			if _, ok := exists[target]; !ok {
				target = link + noteSuffix
				if _, ok := exists[target]; !ok {
					continue
				}
			}
			if to, ok := g.nameIndex[target]; ok {
				g.Edges = append(g.Edges, Edge{From: from, To: to})
			}
		}
	}

	return g
}

// Index returns the node index for a name.
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.nameIndex[name]
	return i, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Positions returns the current node positions in index order.
func (g *Graph) Positions() []viewport.Vec2 {
	points := make([]viewport.Vec2, len(g.Nodes))
	for i, n := range g.Nodes {
		points[i] = viewport.Vec2{X: n.X, Y: n.Y}
	}
	return points
}

// Bounds returns the bounding box of all node positions.
func (g *Graph) Bounds() viewport.Bounds {
	b := viewport.Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range g.Nodes {
		b.MinX = math.Min(b.MinX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b
}

// Clone returns a deep copy sharing no state with the receiver, so a view
// can be simulated without disturbing the original.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		BuildID:   g.BuildID,
		Nodes:     make([]Node, len(g.Nodes)),
		Edges:     make([]Edge, len(g.Edges)),
		nameIndex: make(map[string]int, len(g.nameIndex)),
	}
	copy(clone.Nodes, g.Nodes)
	copy(clone.Edges, g.Edges)
	for name, i := range g.nameIndex {
		clone.nameIndex[name] = i
	}
	return clone
}
