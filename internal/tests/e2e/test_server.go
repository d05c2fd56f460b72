// Package e2e exercises the full client stack against an in-process
// rendition of the property-management API: real HTTP, real JWTs, real
// refresh cookies, Redis-backed refresh sessions on miniredis.
package e2e

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Rahuly1606/Property-management-System-sub000/internal/app"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/config"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/tests/backend"
)

// TestServer bundles the reference backend, its Redis, and a fully wired
// client container pointed at it.
type TestServer struct {
	t         *testing.T
	Backend   *backend.Backend
	Server    *httptest.Server
	Redis     *miniredis.Miniredis
	Container *app.Container
	CredsPath string
}

// NewTestServer starts the backend and builds a client container against
// it. Everything is cleaned up with the test.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	be, err := backend.New(redisClient, "e2e-signing-secret", time.Hour)
	require.NoError(t, err, "backend must build")

	srv := httptest.NewServer(be.Router())
	t.Cleanup(srv.Close)

	ts := &TestServer{
		t:         t,
		Backend:   be,
		Server:    srv,
		Redis:     mr,
		CredsPath: filepath.Join(t.TempDir(), "credentials.json"),
	}
	ts.Container = ts.NewContainer()
	return ts
}

// NewContainer builds a fresh client container over the same credential
// file, simulating a process restart. The new container has its own
// cookie jar, so only the persisted record carries over.
func (ts *TestServer) NewContainer() *app.Container {
	ts.t.Helper()
	cfg := &config.Config{
		BaseURL:          ts.Server.URL,
		HTTPTimeout:      10 * time.Second,
		CredentialsPath:  ts.CredsPath,
		LoginPath:        "/login",
		UnauthorizedPath: "/unauthorized",
	}
	c, err := app.New(cfg)
	require.NoError(ts.t, err, "container must build")
	ts.t.Cleanup(c.Close)
	return c
}
