package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

func newChainSession() *Session {
	s := NewSession(Build(chainDocs(), false), DefaultSimConfig())
	s.SetViewport(800, 600)
	return s
}

// screenPos maps a node of the active view to its screen position.
func screenPos(s *Session, name string) viewport.Vec2 {
	idx, ok := s.Active().Index(name)
	if !ok {
		panic("node not in active view: " + name)
	}
	node := s.Active().Nodes[idx]
	return s.Camera.WorldToScreen(viewport.Vec2{X: node.X, Y: node.Y}, viewport.Vec2{X: 400, Y: 300})
}

func TestSession_ActiveIsClone(t *testing.T) {
	s := newChainSession()

	s.Active().Nodes[0].X += 1000
	assert.NotEqual(t, s.Full().Nodes[0].X, s.Active().Nodes[0].X,
		"simulating the active view must not disturb the retained full graph")
}

func TestSession_SelectHit(t *testing.T) {
	s := newChainSession()

	idx, ok := s.Select(screenPos(s, "B"))
	require.True(t, ok)

	name := s.Active().Nodes[idx].Name
	assert.Equal(t, "B", name)
	assert.Equal(t, idx, s.Selected())
}

func TestSession_SelectMissKeepsSelection(t *testing.T) {
	s := newChainSession()

	first, ok := s.Select(screenPos(s, "A"))
	require.True(t, ok)

	// A click into empty space leaves the selection unchanged.
	got, ok := s.Select(viewport.Vec2{X: 10, Y: 10})
	assert.False(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, first, s.Selected())
}

func TestSession_EgoFilterOnSelect(t *testing.T) {
	s := newChainSession()
	require.NoError(t, s.SetEgoHops(1))

	_, ok := s.Select(screenPos(s, "B"))
	require.True(t, ok)

	active := s.Active()
	assert.Equal(t, 3, active.NodeCount())
	assert.Equal(t, "B", active.Nodes[0].Name)
	assert.Zero(t, s.Selected(), "ego center is always index 0")

	names := map[string]bool{}
	for _, n := range active.Nodes {
		names[n.Name] = true
	}
	assert.True(t, names["A"])
	assert.True(t, names["C"])
	assert.False(t, names["D"])
}

func TestSession_EgoThenRefilter(t *testing.T) {
	s := newChainSession()
	require.NoError(t, s.SetEgoHops(1))

	_, ok := s.Select(screenPos(s, "A"))
	require.True(t, ok)
	require.Equal(t, 2, s.Active().NodeCount()) // A and B

	// Selecting inside the filtered view re-centers on the full graph.
	_, ok = s.Select(screenPos(s, "B"))
	require.True(t, ok)

	assert.Equal(t, 3, s.Active().NodeCount())
	assert.Equal(t, "B", s.Active().Nodes[0].Name)
}

func TestSession_SetEgoHopsZeroResets(t *testing.T) {
	s := newChainSession()
	require.NoError(t, s.SetEgoHops(2))
	_, ok := s.Select(screenPos(s, "B"))
	require.True(t, ok)
	require.Less(t, s.Active().NodeCount(), 4)

	require.NoError(t, s.SetEgoHops(0))

	assert.Equal(t, 4, s.Active().NodeCount())
	assert.Equal(t, -1, s.Selected())
	assert.Zero(t, s.EgoHops())
}

func TestSession_SetEgoHopsNegative(t *testing.T) {
	s := newChainSession()
	assert.Error(t, s.SetEgoHops(-1))
}

func TestSession_Tick(t *testing.T) {
	s := newChainSession()

	energy, running := s.Tick()
	assert.Positive(t, energy)
	assert.True(t, running)

	// A converged session stops reporting running.
	single := NewSession(Build([]Document{{Name: "only"}}, false), DefaultSimConfig())
	energy, running = single.Tick()
	assert.Zero(t, energy)
	assert.False(t, running)
}

func TestSession_Replace(t *testing.T) {
	s := newChainSession()
	_, ok := s.Select(screenPos(s, "A"))
	require.True(t, ok)

	s.Replace(Build([]Document{{Name: "X"}, {Name: "Y"}}, false))

	assert.Equal(t, 2, s.Full().NodeCount())
	assert.Equal(t, 2, s.Active().NodeCount())
	assert.Equal(t, -1, s.Selected())
}

func TestSession_CameraOps(t *testing.T) {
	s := newChainSession()

	s.Zoom(2)
	assert.InDelta(t, 1.0, s.Camera.Zoom, 1e-9)

	s.Pan(viewport.Vec2{X: 10, Y: 0})
	assert.InDelta(t, 10.0, s.Camera.Offset.X, 1e-9)

	s.FitToView()
	b := s.Active().Bounds()
	center := b.Center()
	assert.InDelta(t, -center.X, s.Camera.Offset.X, 1e-9)
	assert.InDelta(t, -center.Y, s.Camera.Offset.Y, 1e-9)
}
