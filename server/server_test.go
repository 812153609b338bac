package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgenotes/vaultgraph/internal/profile"
)

func newTestServer(t *testing.T, watch bool) *Server {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "A.md"), []byte("# A\n[[B]]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "B.md"), []byte("# B\n"), 0o644))

	p := &profile.Profile{Mode: "dev", Vault: root, Port: 8080, Watch: watch}
	require.NoError(t, p.Validate())

	s, err := NewServer(context.Background(), p)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func TestServer_ServesVizPage(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `"id":"A"`)
}

func TestServer_ServesAPI(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nodes"`)
}

func TestServer_WatchRebuilds(t *testing.T) {
	s := newTestServer(t, true)
	require.NotNil(t, s.watcher)

	require.NoError(t, os.WriteFile(filepath.Join(s.Profile.Vault, "C.md"), []byte("[[A]]\n"), 0o644))

	require.Eventually(t, func() bool {
		active, _ := s.apiService.SnapshotActive()
		return active.NodeCount() == 3
	}, 5*time.Second, 50*time.Millisecond, "watched change should trigger a rebuild")
}
