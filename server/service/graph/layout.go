package graph

import (
	"math"

	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

// SimConfig holds the force-directed layout constants.
type SimConfig struct {
	// SpringLength is the ideal edge length the spring force pulls toward.
	SpringLength float64
	// Repulsion is the Coulomb constant; force magnitude is
	// Repulsion / distance².
	Repulsion float64
	// Attraction scales the Hooke spring force (distance - SpringLength).
	Attraction float64
	// Damping multiplies velocities each tick. Must be strictly below 1
	// for the integration to settle.
	Damping float64
	// EnergyThreshold is the total kinetic energy below which the layout
	// counts as converged.
	EnergyThreshold float64
}

// DefaultSimConfig returns the constants tuned for dense personal vaults.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		SpringLength:    30.0,
		Repulsion:       5000.0,
		Attraction:      0.05,
		Damping:         0.9,
		EnergyThreshold: 1.0,
	}
}

// Simulator advances a force-directed layout one tick at a time. It owns
// the per-node velocities; the Graph owns the positions.
type Simulator struct {
	cfg        SimConfig
	velocities []viewport.Vec2
	energy     float64
	stepped    bool
}

// NewSimulator creates a simulator for a graph of the given node count,
// with all velocities at rest.
func NewSimulator(cfg SimConfig, nodeCount int) *Simulator {
	return &Simulator{
		cfg:        cfg,
		velocities: make([]viewport.Vec2, nodeCount),
	}
}

// Energy returns the total kinetic energy after the last step.
func (s *Simulator) Energy() float64 { return s.energy }

// Converged reports whether the layout has stabilized. A simulator that has
// never stepped is not converged unless it has nothing to move.
func (s *Simulator) Converged() bool {
	if len(s.velocities) <= 1 {
		return true
	}
	return s.stepped && s.energy < s.cfg.EnergyThreshold
}

// Step runs one simulation tick over the graph and returns the total
// kinetic energy. Repulsion is O(n²), attraction O(edges); integration is
// semi-implicit Euler with velocity damping. Graphs with at most one node
// report zero energy and do not move.
func (s *Simulator) Step(g *Graph) float64 {
	n := len(g.Nodes)
	s.stepped = true
	if n <= 1 {
		s.energy = 0
		return 0
	}

	forces := make([]viewport.Vec2, n)

	// Coulomb repulsion between every unordered pair. Distance is floored
	// at 1.0 so coincident points cannot blow up the force.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := g.Nodes[j].X - g.Nodes[i].X
			dy := g.Nodes[j].Y - g.Nodes[i].Y
			dist := math.Max(math.Sqrt(dx*dx+dy*dy), 1.0)

			force := s.cfg.Repulsion / (dist * dist)
			fx := dx / dist * force
			fy := dy / dist * force

			forces[i].X -= fx
			forces[i].Y -= fy
			forces[j].X += fx
			forces[j].Y += fy
		}
	}

	// Hooke springs along edges.
	for _, e := range g.Edges {
		dx := g.Nodes[e.To].X - g.Nodes[e.From].X
		dy := g.Nodes[e.To].Y - g.Nodes[e.From].Y
		dist := math.Max(math.Sqrt(dx*dx+dy*dy), 1.0)

		force := (dist - s.cfg.SpringLength) * s.cfg.Attraction
		fx := dx / dist * force
		fy := dy / dist * force

		forces[e.From].X += fx
		forces[e.From].Y += fy
		forces[e.To].X -= fx
		forces[e.To].Y -= fy
	}

	var energy float64
	for i := 0; i < n; i++ {
		s.velocities[i].X = (s.velocities[i].X + forces[i].X) * s.cfg.Damping
		s.velocities[i].Y = (s.velocities[i].Y + forces[i].Y) * s.cfg.Damping

		g.Nodes[i].X += s.velocities[i].X
		g.Nodes[i].Y += s.velocities[i].Y

		energy += s.velocities[i].X*s.velocities[i].X + s.velocities[i].Y*s.velocities[i].Y
	}

	s.energy = energy
	return energy
}

// Run steps the simulation until convergence or until maxIterations ticks
// have been spent, returning the final energy and the number of ticks run.
func (s *Simulator) Run(g *Graph, maxIterations int) (float64, int) {
	ticks := 0
	for ; ticks < maxIterations; ticks++ {
		if s.Step(g) < s.cfg.EnergyThreshold {
			ticks++
			break
		}
	}
	return s.energy, ticks
}
