package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchday-data/internal/cache"
	"github.com/albapepper/matchday-data/internal/config"
	"github.com/albapepper/matchday-data/internal/store"
)

type okDB struct{}

func (okDB) HealthCheck(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins:  []string{"*"},
		RateLimitEnabled:  true,
		RateLimitRequests: 4,
		RateLimitWindow:   time.Minute,
	}
}

func newServer(cfg *config.Config) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(store.NewMemory(), okDB{}, cache.New(true), cfg, logger)
}

func TestRouter_Routes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = false
	srv := newServer(cfg)

	for path, want := range map[string]int{
		"/":               http.StatusOK,
		"/health":         http.StatusOK,
		"/health/db":      http.StatusOK,
		"/health/cache":   http.StatusOK,
		"/matches":        http.StatusOK,
		"/matches/nope":   http.StatusNotFound,
		"/players/nope":   http.StatusNotFound,
		"/does-not-exist": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestRouter_TimingHeader(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = false
	rec := httptest.NewRecorder()
	newServer(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}

func TestRouter_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	newServer(testConfig()).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := newServer(testConfig())

	var limited int
	for range 10 {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	assert.Positive(t, limited)
}
