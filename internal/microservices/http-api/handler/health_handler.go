package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	database Pinger
	cache    Pinger
	logger   *slog.Logger
}

// NewHealthHandler builds the welcome and health endpoints. cache may be nil.
func NewHealthHandler(database, cache Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache, logger: logger}
}

func (h *HealthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Movie Logger API"})
}

// CheckConn pings the database and, when configured, the cache.
func (h *HealthHandler) CheckConn(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "connected"}

	if err := h.database(ctx); err != nil {
		h.logger.Error("health_check_failed", "dependency", "database", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["database"] = "disconnected"
	}

	if h.cache != nil {
		body["cache"] = "connected"
		if err := h.cache(ctx); err != nil {
			// the cache is optional, so it degrades the report without failing it
			h.logger.Warn("health_check_failed", "dependency", "cache", "error", err)
			body["cache"] = "disconnected"
		}
	}

	c.JSON(status, body)
}
