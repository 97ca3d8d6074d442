package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"movielogger/internal/microservices/http-api/middleware"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// storeTimeout bounds a request's storage work.
const storeTimeout = 5 * time.Second

func storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}

// respondError writes err as {"message": ...} with the status of its kind.
// Server-side failures are logged and answered with fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		requestID, _ := c.Get(middleware.RequestIDKey)
		logger.Error("request_failed",
			"path", c.FullPath(),
			"request_id", requestID,
			"upstream", errors.Is(err, service.ErrUpstream),
			"error", err,
		)
		_ = c.Error(err)
		c.JSON(status, gin.H{"message": fallback})
		return
	}

	message := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	c.JSON(status, gin.H{"message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// requireUser returns the authenticated user id, answering 401 when absent.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return "", false
	}
	return userID, true
}
