package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/config"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.App.FrontendDir = t.TempDir()
	require.NoError(t, cfg.Normalize())
	return cfg
}

// pg.Connect does not dial until the first query, so routes that stay away from the
// database work without one.
func TestNew(t *testing.T) {
	cfg := newTestConfig(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(context.Background(), cfg, pg.Connect(&pg.Options{Addr: "127.0.0.1:1"}), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.DB.Close() })

	for path, code := range map[string]int{
		"/health":    http.StatusOK,
		"/metrics":   http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, code, rec.Code, path)
	}
}

func TestNewStorage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := newTestConfig(t)
	files, mem, err := newStorage(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, mem)
	assert.Equal(t, files, mem)
	assert.Equal(t, "http://localhost:3000/files/news/a.png", mem.PublicURL("news/a.png"))

	cfg.Storage.Driver = config.StorageS3
	cfg.Storage.Bucket = "media"
	_, _, err = newStorage(context.Background(), cfg, logger)
	assert.Error(t, err, "credentials are required")
}
