// Package v1 exposes the graph session over a JSON API. The server owns a
// single session; a rendering client drives it with tick, select, and
// camera calls.
package v1

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/forgenotes/vaultgraph/internal/profile"
	"github.com/forgenotes/vaultgraph/internal/vault"
	"github.com/forgenotes/vaultgraph/server/middleware"
	"github.com/forgenotes/vaultgraph/server/service/graph"
)

type APIV1Service struct {
	Profile *profile.Profile
	Scanner *vault.Scanner

	simCfg graph.SimConfig

	mu      sync.Mutex
	session *graph.Session
}

// NewAPIV1Service creates the API service around an already-built graph.
func NewAPIV1Service(profile *profile.Profile, scanner *vault.Scanner, full *graph.Graph) *APIV1Service {
	cfg := graph.DefaultSimConfig()
	return &APIV1Service{
		Profile: profile,
		Scanner: scanner,
		simCfg:  cfg,
		session: graph.NewSession(full, cfg),
	}
}

// RegisterRoutes attaches all v1 endpoints to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.GET("/graph", s.GetGraph)
	g.POST("/graph/select", s.SelectNode)
	g.POST("/graph/ego", s.SetEgoHops)
	g.POST("/graph/reset", s.ResetGraph)

	g.POST("/camera/pan", s.PanCamera)
	g.POST("/camera/zoom", s.ZoomCamera)
	g.POST("/camera/fit", s.FitCamera)

	g.GET("/feeds/orphans", s.GetOrphansFeed)

	// Tick and rescan do real work per call, so they carry the budget.
	limited := g.Group("", middleware.NewRateLimiter(120, 240).Middleware())
	limited.POST("/graph/tick", s.TickGraph)
	limited.POST("/graph/rescan", s.RescanVault)
}

// Rescan rebuilds the session from a fresh vault scan. It is also the
// watcher's change callback.
func (s *APIV1Service) Rescan(ctx context.Context) error {
	docs, err := s.Scanner.Scan(ctx, s.Profile.Vault)
	if err != nil {
		return err
	}
	full := graph.Build(docs, s.Profile.FilterOrphans)

	s.mu.Lock()
	s.session.Replace(full)
	s.mu.Unlock()
	return nil
}

// SnapshotActive returns a copy of the active view plus the full note count,
// for callers rendering outside the session lock.
func (s *APIV1Service) SnapshotActive() (*graph.Graph, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Active().Clone(), s.session.Full().NodeCount()
}

func (s *APIV1Service) RescanVault(c echo.Context) error {
	if err := s.Rescan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return s.GetGraph(c)
}
