package graph

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

// Session is the explicit view state a renderer drives: the full graph from
// the latest scan, the active (possibly ego-filtered) view being simulated,
// the camera, and the selection. It has exactly one logical writer — the
// render loop — and does no locking of its own.
type Session struct {
	ID string

	full   *Graph
	active *Graph
	sim    *Simulator
	cfg    SimConfig

	Camera   viewport.Camera
	selected int
	egoHops  int

	viewportW float64
	viewportH float64
}

// NewSession creates a session over a freshly built graph.
func NewSession(full *Graph, cfg SimConfig) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		cfg:    cfg,
		Camera: viewport.NewCamera(),
	}
	s.Replace(full)
	return s
}

// Replace swaps in a newly built full graph (after a rescan) and resets the
// active view, simulation, and selection.
func (s *Session) Replace(full *Graph) {
	s.full = full
	s.resetActive()
}

// The active view is always a clone, so simulation never mutates the
// retained full graph and reset is always possible.
func (s *Session) resetActive() {
	s.active = s.full.Clone()
	s.sim = NewSimulator(s.cfg, s.active.NodeCount())
	s.selected = -1
}

// Full returns the retained, unsimulated full graph.
func (s *Session) Full() *Graph { return s.full }

// Active returns the graph view currently being simulated and drawn.
func (s *Session) Active() *Graph { return s.active }

// Selected returns the selected node index in the active view, or -1.
func (s *Session) Selected() int { return s.selected }

// EgoHops returns the current ego filter radius; 0 means the full view.
func (s *Session) EgoHops() int { return s.egoHops }

// Energy returns the simulation's kinetic energy after the last tick.
func (s *Session) Energy() float64 { return s.sim.Energy() }

// Stable reports whether the layout has converged.
func (s *Session) Stable() bool { return s.sim.Converged() }

// SetViewport records the renderer's viewport size, used for hit-testing
// and fit-to-view.
func (s *Session) SetViewport(width, height float64) {
	s.viewportW = width
	s.viewportH = height
}

func (s *Session) screenCenter() viewport.Vec2 {
	return viewport.Vec2{X: s.viewportW / 2, Y: s.viewportH / 2}
}

// Tick advances the simulation one step unless it has already converged.
// It returns the kinetic energy and whether the simulation is still running.
func (s *Session) Tick() (float64, bool) {
	if s.sim.Converged() {
		return s.sim.Energy(), false
	}
	energy := s.sim.Step(s.active)
	return energy, !s.sim.Converged()
}

// Select hit-tests a screen point against the active view. A hit updates
// the selection and, when an ego filter is active, re-extracts the ego
// network around the new center. A miss leaves the selection unchanged.
func (s *Session) Select(screen viewport.Vec2) (int, bool) {
	idx := s.Camera.HitTest(screen, s.screenCenter(), s.active.Positions())
	if idx < 0 {
		return s.selected, false
	}
	s.selected = idx
	if s.egoHops > 0 {
		if err := s.applyEgo(); err != nil {
			return s.selected, false
		}
	}
	return s.selected, true
}

// SetEgoHops sets the ego filter radius. Zero restores the full view; a
// positive radius re-filters immediately around the current selection, or
// waits for the next selection when nothing is selected.
func (s *Session) SetEgoHops(hops int) error {
	if hops < 0 {
		return errors.Errorf("ego hops must be non-negative, got %d", hops)
	}
	s.egoHops = hops
	if hops == 0 {
		s.Reset()
		return nil
	}
	if s.selected >= 0 {
		return s.applyEgo()
	}
	return nil
}

// applyEgo swaps the active view for the ego network around the current
// selection. The selection is resolved against the full graph by name, so
// re-filtering from an already filtered view picks the right center.
func (s *Session) applyEgo() error {
	name := s.active.Nodes[s.selected].Name
	center, ok := s.full.Index(name)
	if !ok {
		return errors.Errorf("selected node %q not present in full graph", name)
	}

	ego, err := Ego(s.full, center, s.egoHops)
	if err != nil {
		return errors.Wrap(err, "extract ego network")
	}

	s.active = ego
	s.sim = NewSimulator(s.cfg, ego.NodeCount())
	s.selected = 0 // the ego center is always index 0
	s.FitToView()
	return nil
}

// Reset restores the full graph view, clearing the ego filter and the
// selection.
func (s *Session) Reset() {
	s.egoHops = 0
	s.resetActive()
	s.FitToView()
}

// Pan shifts the camera by a screen-space drag delta.
func (s *Session) Pan(delta viewport.Vec2) {
	s.Camera.Pan(delta)
}

// Zoom scales the camera zoom multiplicatively, clamped.
func (s *Session) Zoom(factor float64) {
	s.Camera.ZoomBy(factor)
}

// FitToView fits the active view's bounding box into the viewport. A
// no-op without nodes or a known viewport size.
func (s *Session) FitToView() {
	if s.active.NodeCount() == 0 || s.viewportW <= 0 || s.viewportH <= 0 {
		return
	}
	s.Camera.Fit(s.active.Bounds(), s.viewportW, s.viewportH)
}
