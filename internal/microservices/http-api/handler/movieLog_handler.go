package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"movielogger/internal/microservices/http-api/dto"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieLogHandler struct {
	reconciler service.Reconciler
	logService service.MovieLogService
	logger     *slog.Logger
}

func NewMovieLogHandler(reconciler service.Reconciler, logService service.MovieLogService, logger *slog.Logger) *MovieLogHandler {
	return &MovieLogHandler{reconciler: reconciler, logService: logService, logger: logger}
}

func (h *MovieLogHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	logs, err := h.logService.List(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "Server error fetching movie logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": dto.FromModelsToMovieLogResponses(logs)})
}

// Log records a watch. The movie is resolved (and created if new) first,
// then the user's single entry for it is inserted or overwritten.
func (h *MovieLogHandler) Log(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.LogMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Movie details and watched date are required")
		return
	}

	input, err := req.ToLogInput()
	if err == nil {
		err = input.Validate()
	}
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	movieID, err := h.reconciler.ResolveMovie(ctx, req.ToMovieRef())
	if err != nil {
		respondError(c, h.logger, err, "Server error logging movie")
		return
	}

	result, err := h.logService.Upsert(ctx, userID, movieID, input)
	if err != nil {
		respondError(c, h.logger, err, "Server error logging movie")
		return
	}

	if result.Created {
		c.JSON(http.StatusCreated, dto.LogMovieResponse{Message: "Movie logged successfully", LogID: result.ID})
		return
	}
	c.JSON(http.StatusOK, dto.LogMovieResponse{Message: "Movie log updated successfully", LogID: result.ID})
}

func (h *MovieLogHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	logID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.logger, service.ErrLogNotFound, "")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	if err := h.logService.Delete(ctx, logID, userID); err != nil {
		respondError(c, h.logger, err, "Server error deleting movie log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movie log deleted successfully"})
}
