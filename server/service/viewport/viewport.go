// Package viewport maps between world coordinates (simulation space) and
// screen coordinates (pixels).
package viewport

import (
	"math"
)

// Zoom is clamped to this range to prevent degenerate or runaway
// magnification.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

const (
	// hitRadiusPx is the selection radius in screen pixels.
	hitRadiusPx = 10.0
	// fitFill leaves 20% padding when fitting the graph into the viewport.
	fitFill = 0.8
	// defaultZoom starts zoomed out so the initial circle layout is visible.
	defaultZoom = 0.5
)

// Vec2 is a 2-D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Center returns the center point of the box.
func (b Bounds) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Camera holds the view state: a world-space offset and a zoom factor.
type Camera struct {
	Offset Vec2    `json:"offset"`
	Zoom   float64 `json:"zoom"`
}

// NewCamera returns a camera at the origin with the default zoom.
func NewCamera() Camera {
	return Camera{Zoom: defaultZoom}
}

// WorldToScreen maps a world point to screen space given the screen center.
func (c Camera) WorldToScreen(world, screenCenter Vec2) Vec2 {
	return screenCenter.Add(world.Add(c.Offset).Scale(c.Zoom))
}

// ScreenToWorld is the algebraic inverse of WorldToScreen.
func (c Camera) ScreenToWorld(screen, screenCenter Vec2) Vec2 {
	return Vec2{
		X: (screen.X-screenCenter.X)/c.Zoom - c.Offset.X,
		Y: (screen.Y-screenCenter.Y)/c.Zoom - c.Offset.Y,
	}
}

// Pan shifts the camera by a screen-space drag delta. Dividing by zoom keeps
// panning speed independent of magnification.
func (c *Camera) Pan(delta Vec2) {
	c.Offset = c.Offset.Add(delta.Scale(1 / c.Zoom))
}

// ZoomBy scales the zoom multiplicatively and clamps it.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = clampZoom(c.Zoom * factor)
}

// Reset restores the camera to its initial state.
func (c *Camera) Reset() {
	*c = NewCamera()
}

// Fit positions the camera so the given world bounds fill the viewport at
// the fit fill factor. A zero-size box (single node) fits at maximum zoom.
func (c *Camera) Fit(b Bounds, viewportW, viewportH float64) {
	zoomX := math.Inf(1)
	zoomY := math.Inf(1)
	if b.Width() > 0 {
		zoomX = viewportW / b.Width() * fitFill
	}
	if b.Height() > 0 {
		zoomY = viewportH / b.Height() * fitFill
	}
	c.Zoom = clampZoom(math.Min(zoomX, zoomY))

	center := b.Center()
	c.Offset = Vec2{X: -center.X, Y: -center.Y}
}

// HitRadius returns the selection radius in world units at the current zoom.
func (c Camera) HitRadius() float64 {
	return hitRadiusPx / c.Zoom
}

// HitTest maps a screen click into world space and returns the index of the
// nearest point within the hit radius, or -1 when nothing is close enough.
func (c Camera) HitTest(screen, screenCenter Vec2, points []Vec2) int {
	world := c.ScreenToWorld(screen, screenCenter)
	radius := c.HitRadius()

	best := -1
	bestDist := radius
	for i, p := range points {
		dx := p.X - world.X
		dy := p.Y - world.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func clampZoom(z float64) float64 {
	return math.Min(math.Max(z, MinZoom), MaxZoom)
}
