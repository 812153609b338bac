package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainDocs is the reference vault: A→{B}, B→{C}, C and D link nothing.
func chainDocs() []Document {
	return []Document{
		{Name: "A", Links: []string{"B"}},
		{Name: "B", Links: []string{"C"}},
		{Name: "C"},
		{Name: "D"},
	}
}

func TestBuild_OrphanClassification(t *testing.T) {
	g := Build(chainDocs(), false)

	require.Equal(t, 4, g.NodeCount())
	orphans := map[string]bool{}
	for _, n := range g.Nodes {
		orphans[n.Name] = n.IsOrphan
	}

	// Nothing points to A or D; B and C each have an incoming link.
	assert.True(t, orphans["A"])
	assert.False(t, orphans["B"])
	assert.False(t, orphans["C"])
	assert.True(t, orphans["D"])
	assert.Equal(t, []string{"A", "D"}, g.Orphans())
}

func TestBuild_FilterOrphans(t *testing.T) {
	g := Build(chainDocs(), true)

	require.Equal(t, 2, g.NodeCount())
	assert.Equal(t, "B", g.Nodes[0].Name)
	assert.Equal(t, "C", g.Nodes[1].Name)

	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, Edge{From: 0, To: 1}, g.Edges[0])
}

func TestBuild_StableIndices(t *testing.T) {
	g := Build(chainDocs(), false)

	for i, name := range []string{"A", "B", "C", "D"} {
		idx, ok := g.Index(name)
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Equal(t, name, g.Nodes[i].Name)
	}
}

func TestBuild_IndexValidity(t *testing.T) {
	g := Build(chainDocs(), false)

	require.Equal(t, 2, g.EdgeCount())
	for _, e := range g.Edges {
		assert.GreaterOrEqual(t, e.From, 0)
		assert.Less(t, e.From, g.NodeCount())
		assert.GreaterOrEqual(t, e.To, 0)
		assert.Less(t, e.To, g.NodeCount())
	}
}

func TestBuild_SuffixResolution(t *testing.T) {
	docs := []Document{
		{Name: "Index", Links: []string{"Daily"}},
		{Name: "Daily.md"},
	}
	g := Build(docs, false)

	// The bare link "Daily" resolves to the suffixed document name.
	require.Equal(t, 1, g.EdgeCount())
	from, _ := g.Index("Index")
	to, _ := g.Index("Daily.md")
	assert.Equal(t, Edge{From: from, To: to}, g.Edges[0])
	assert.False(t, g.Nodes[to].IsOrphan)
}

func TestBuild_DanglingLinksDropped(t *testing.T) {
	docs := []Document{
		{Name: "A", Links: []string{"Not Yet Written", "B"}},
		{Name: "B"},
	}
	g := Build(docs, false)

	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, Edge{From: 0, To: 1}, g.Edges[0])
}

func TestBuild_ParallelEdgesPreserved(t *testing.T) {
	docs := []Document{
		{Name: "A", Links: []string{"B"}},
		{Name: "B", Links: []string{"A"}},
	}
	g := Build(docs, false)

	// A→B and B→A both survive; repeated links mean repeated springs.
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuild_EmptyDocumentSet(t *testing.T) {
	g := Build(nil, false)

	require.NotNil(t, g)
	assert.Zero(t, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
	assert.NotEmpty(t, g.BuildID)
}

func TestBuild_CircleInitialPositions(t *testing.T) {
	g := Build(chainDocs(), false)

	radius := math.Sqrt(4) * initialRadiusScale
	for i, n := range g.Nodes {
		angle := float64(i) / 4 * 2 * math.Pi
		assert.InDelta(t, radius*math.Cos(angle), n.X, 1e-9)
		assert.InDelta(t, radius*math.Sin(angle), n.Y, 1e-9)
	}

	// No two nodes start coincident.
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			dx := g.Nodes[i].X - g.Nodes[j].X
			dy := g.Nodes[i].Y - g.Nodes[j].Y
			assert.Greater(t, math.Hypot(dx, dy), 0.0)
		}
	}
}

func TestGraph_Clone(t *testing.T) {
	g := Build(chainDocs(), false)
	clone := g.Clone()

	clone.Nodes[0].X += 100
	clone.Nodes[0].IsOrphan = false

	assert.NotEqual(t, g.Nodes[0].X, clone.Nodes[0].X)
	assert.True(t, g.Nodes[0].IsOrphan)
	assert.Equal(t, g.EdgeCount(), clone.EdgeCount())

	idx, ok := clone.Index("C")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestGraph_Bounds(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{X: -10, Y: 5},
		{X: 30, Y: -20},
		{X: 0, Y: 0},
	}}
	b := g.Bounds()

	assert.Equal(t, -10.0, b.MinX)
	assert.Equal(t, 30.0, b.MaxX)
	assert.Equal(t, -20.0, b.MinY)
	assert.Equal(t, 5.0, b.MaxY)
}

func TestGraph_Stats(t *testing.T) {
	g := Build(chainDocs(), false)
	s := g.Stats()

	assert.Equal(t, 4, s.NodeCount)
	assert.Equal(t, 2, s.EdgeCount)
	assert.Equal(t, 2, s.OrphanCount)
	assert.InDelta(t, 50.0, s.ConnectedPct, 1e-9)
}

func TestHubs(t *testing.T) {
	docs := []Document{
		{Name: "Small", Links: []string{"A"}},
		{Name: "Big", Links: []string{"A", "B", "C"}},
		{Name: "None"},
		{Name: "Mid", Links: []string{"A", "B"}},
	}

	hubs := Hubs(docs, 2)
	require.Len(t, hubs, 2)
	assert.Equal(t, Hub{Name: "Big", OutLinks: 3}, hubs[0])
	assert.Equal(t, Hub{Name: "Mid", OutLinks: 2}, hubs[1])

	all := Hubs(docs, 0)
	assert.Len(t, all, 4)
	assert.Equal(t, "None", all[3].Name)
}
