// Package server wires the vault scanner, graph session, and HTTP surface
// together.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/forgenotes/vaultgraph/internal/profile"
	"github.com/forgenotes/vaultgraph/internal/vault"
	"github.com/forgenotes/vaultgraph/plugin/htmlviz"
	"github.com/forgenotes/vaultgraph/server/middleware"
	apiv1 "github.com/forgenotes/vaultgraph/server/router/api/v1"
	"github.com/forgenotes/vaultgraph/server/service/graph"
)

// rescanDebounce is how long the vault must stay quiet before a watched
// change triggers a rebuild.
const rescanDebounce = 500 * time.Millisecond

type Server struct {
	Profile *profile.Profile

	echo       *echo.Echo
	apiService *apiv1.APIV1Service
	watcher    *vault.Watcher
}

// NewServer scans the vault, builds the graph, and prepares the HTTP stack.
func NewServer(ctx context.Context, profile *profile.Profile) (*Server, error) {
	scanner := vault.NewScanner()
	docs, err := scanner.Scan(ctx, profile.Vault)
	if err != nil {
		return nil, errors.Wrap(err, "initial vault scan")
	}
	full := graph.Build(docs, profile.FilterOrphans)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestLogger(slog.Default()))

	s := &Server{
		Profile:    profile,
		echo:       e,
		apiService: apiv1.NewAPIV1Service(profile, scanner, full),
	}
	s.apiService.RegisterRoutes(e)
	e.GET("/", s.servePage)

	if profile.Watch {
		watcher, err := vault.Watch(profile.Vault, rescanDebounce, s.onVaultChange)
		if err != nil {
			return nil, errors.Wrap(err, "start vault watcher")
		}
		s.watcher = watcher
	}

	return s, nil
}

// servePage renders the active graph as a standalone visualization page.
func (s *Server) servePage(c echo.Context) error {
	active, total := s.apiService.SnapshotActive()

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return htmlviz.Render(c.Response(), active, total, "Vault Graph")
}

func (s *Server) onVaultChange() {
	if err := s.apiService.Rescan(context.Background()); err != nil {
		slog.Error("vault rescan failed", "error", err)
		return
	}
	slog.Info("vault rescanned after change")
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "addr", addr, "vault", s.Profile.Vault, "version", s.Profile.Version)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// Shutdown stops the watcher and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			slog.Warn("failed to close vault watcher", "error", err)
		}
	}
	return s.echo.Shutdown(ctx)
}
