// Package handler provides HTTP handlers for all API endpoints.
// Handlers read documents through the store interfaces and cache the
// encoded responses.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/matchday-data/internal/api/respond"
	"github.com/albapepper/matchday-data/internal/cache"
	"github.com/albapepper/matchday-data/internal/store"
)

// HealthChecker reports database reachability. *db.Pool implements it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  store.Store
	db     HealthChecker
	cache  *cache.Cache
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(st store.Store, db HealthChecker, c *cache.Cache, logger *slog.Logger) *Handler {
	return &Handler{store: st, db: db, cache: c, logger: logger}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.Status(w, http.StatusOK, map[string]interface{}{
		"name":    "Matchday Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.Status(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.Status(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.Status(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache statistics (entries per resource, dataset version, invalidations).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.Status(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers from the cache when possible. On a miss, load builds
// the response value; found=false becomes a 404 naming kind and the key's id.
func (h *Handler) serveCached(
	w http.ResponseWriter,
	r *http.Request,
	key cache.Key,
	kind string,
	load func(ctx context.Context) (v interface{}, found bool, err error),
) {
	ttl := key.Resource.TTL()
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.NotModified(w, etag)
			return
		}
		respond.Document(w, data, etag, ttl, true)
		return
	}

	v, found, err := load(r.Context())
	if err != nil {
		h.logger.Error("Store read failed", "key", key.String(), "error", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeStoreError, "Failed to read data")
		return
	}
	if !found {
		respond.NotFound(w, kind, key.ID)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Encode response failed", "key", key.String(), "error", err)
		respond.Error(w, http.StatusInternalServerError, respond.CodeEncodeError, "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.NotModified(w, etag)
		return
	}
	respond.Document(w, data, etag, ttl, false)
}
