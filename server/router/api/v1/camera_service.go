package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgenotes/vaultgraph/server/service/viewport"
)

type PanRequest struct {
	// Screen-space drag delta; the camera divides by zoom internally.
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *APIV1Service) PanCamera(c echo.Context) error {
	req := &PanRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed pan request").SetInternal(err)
	}

	s.mu.Lock()
	s.session.Pan(viewport.Vec2{X: req.DX, Y: req.DY})
	state := s.cameraStateLocked()
	s.mu.Unlock()

	return c.JSON(http.StatusOK, state)
}

type ZoomRequest struct {
	Factor float64 `json:"factor"`
}

func (s *APIV1Service) ZoomCamera(c echo.Context) error {
	req := &ZoomRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed zoom request").SetInternal(err)
	}
	if req.Factor <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "zoom factor must be positive")
	}

	s.mu.Lock()
	s.session.Zoom(req.Factor)
	state := s.cameraStateLocked()
	s.mu.Unlock()

	return c.JSON(http.StatusOK, state)
}

type FitRequest struct {
	ViewportW float64 `json:"viewport_w"`
	ViewportH float64 `json:"viewport_h"`
}

func (s *APIV1Service) FitCamera(c echo.Context) error {
	req := &FitRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed fit request").SetInternal(err)
	}

	s.mu.Lock()
	if req.ViewportW > 0 && req.ViewportH > 0 {
		s.session.SetViewport(req.ViewportW, req.ViewportH)
	}
	s.session.FitToView()
	state := s.cameraStateLocked()
	s.mu.Unlock()

	return c.JSON(http.StatusOK, state)
}

// cameraStateLocked snapshots the camera. Caller holds s.mu.
func (s *APIV1Service) cameraStateLocked() CameraState {
	return CameraState{
		OffsetX: s.session.Camera.Offset.X,
		OffsetY: s.session.Camera.Offset.Y,
		Zoom:    s.session.Camera.Zoom,
	}
}
