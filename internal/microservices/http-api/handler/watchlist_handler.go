package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"movielogger/internal/microservices/http-api/dto"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct {
	reconciler       service.Reconciler
	watchlistService service.WatchlistService
	logger           *slog.Logger
}

func NewWatchlistHandler(reconciler service.Reconciler, watchlistService service.WatchlistService, logger *slog.Logger) *WatchlistHandler {
	return &WatchlistHandler{reconciler: reconciler, watchlistService: watchlistService, logger: logger}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	entries, err := h.watchlistService.List(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "Server error fetching watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"watchlist": dto.FromModelsToWatchlistResponses(entries)})
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Movie details are required")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	movieID, err := h.reconciler.ResolveMovie(ctx, req.ToMovieRef())
	if err != nil {
		respondError(c, h.logger, err, "Server error adding to watchlist")
		return
	}

	result, err := h.watchlistService.Add(ctx, userID, movieID)
	if err != nil {
		respondError(c, h.logger, err, "Server error adding to watchlist")
		return
	}

	if result.Added {
		c.JSON(http.StatusCreated, dto.AddWatchlistResponse{Message: "Movie added to watchlist", WatchlistID: result.ID})
		return
	}
	c.JSON(http.StatusOK, dto.AddWatchlistResponse{Message: "Movie is already in watchlist", WatchlistID: result.ID})
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.logger, service.ErrWatchlistNotFound, "")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	if err := h.watchlistService.Remove(ctx, entryID, userID); err != nil {
		respondError(c, h.logger, err, "Server error removing from watchlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movie removed from watchlist"})
}
