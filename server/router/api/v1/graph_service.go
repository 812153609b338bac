package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgenotes/vaultgraph/server/service/graph"
	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

type CameraState struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Zoom    float64 `json:"zoom"`
}

type GraphResponse struct {
	BuildID  string       `json:"build_id"`
	Nodes    []graph.Node `json:"nodes"`
	Edges    []graph.Edge `json:"edges"`
	Stats    graph.Stats  `json:"stats"`
	Camera   CameraState  `json:"camera"`
	Selected int          `json:"selected"`
	EgoHops  int          `json:"ego_hops"`
	Stable   bool         `json:"stable"`
}

// graphResponseLocked snapshots the session. Caller holds s.mu; the node
// and edge slices are cloned so marshaling can happen after the lock is
// released while a concurrent tick mutates the live graph.
func (s *APIV1Service) graphResponseLocked() *GraphResponse {
	active := s.session.Active().Clone()
	return &GraphResponse{
		BuildID:  active.BuildID,
		Nodes:    active.Nodes,
		Edges:    active.Edges,
		Stats:    active.Stats(),
		Camera:   s.cameraStateLocked(),
		Selected: s.session.Selected(),
		EgoHops:  s.session.EgoHops(),
		Stable:   s.session.Stable(),
	}
}

func (s *APIV1Service) GetGraph(c echo.Context) error {
	s.mu.Lock()
	resp := s.graphResponseLocked()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, resp)
}

type TickRequest struct {
	// Steps lets a client catch up after being throttled. Defaults to 1.
	Steps int `json:"steps"`
}

type TickResponse struct {
	Energy  float64      `json:"energy"`
	Running bool         `json:"running"`
	Nodes   []graph.Node `json:"nodes"`
}

func (s *APIV1Service) TickGraph(c echo.Context) error {
	req := &TickRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed tick request").SetInternal(err)
	}
	steps := req.Steps
	if steps < 1 {
		steps = 1
	}
	if steps > 100 {
		steps = 100
	}

	s.mu.Lock()
	var (
		energy  float64
		running bool
	)
	for i := 0; i < steps; i++ {
		energy, running = s.session.Tick()
		if !running {
			break
		}
	}
	nodes := make([]graph.Node, len(s.session.Active().Nodes))
	copy(nodes, s.session.Active().Nodes)
	resp := &TickResponse{
		Energy:  energy,
		Running: running,
		Nodes:   nodes,
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, resp)
}

type SelectRequest struct {
	// Screen-space click position, plus the client's viewport size so the
	// hit test shares the client's coordinate mapping.
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ViewportW float64 `json:"viewport_w"`
	ViewportH float64 `json:"viewport_h"`
}

type SelectResponse struct {
	Selected int            `json:"selected"`
	Hit      bool           `json:"hit"`
	Node     *graph.Node    `json:"node,omitempty"`
	Graph    *GraphResponse `json:"graph"`
}

func (s *APIV1Service) SelectNode(c echo.Context) error {
	req := &SelectRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed select request").SetInternal(err)
	}

	s.mu.Lock()
	if req.ViewportW > 0 && req.ViewportH > 0 {
		s.session.SetViewport(req.ViewportW, req.ViewportH)
	}
	idx, hit := s.session.Select(viewport.Vec2{X: req.X, Y: req.Y})
	resp := &SelectResponse{
		Selected: s.session.Selected(),
		Hit:      hit,
		Graph:    s.graphResponseLocked(),
	}
	if hit && idx >= 0 && idx < s.session.Active().NodeCount() {
		node := s.session.Active().Nodes[s.session.Selected()]
		resp.Node = &node
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, resp)
}

type EgoRequest struct {
	Hops int `json:"hops"`
}

func (s *APIV1Service) SetEgoHops(c echo.Context) error {
	req := &EgoRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed ego request").SetInternal(err)
	}

	s.mu.Lock()
	err := s.session.SetEgoHops(req.Hops)
	var resp *GraphResponse
	if err == nil {
		resp = s.graphResponseLocked()
	}
	s.mu.Unlock()

	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) ResetGraph(c echo.Context) error {
	s.mu.Lock()
	s.session.Reset()
	resp := s.graphResponseLocked()
	s.mu.Unlock()
	return c.JSON(http.StatusOK, resp)
}
