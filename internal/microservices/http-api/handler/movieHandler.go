package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"movielogger/internal/microservices/http-api/dto"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// externalIDPrefix marks a /movies/:id path parameter as a TMDB id.
const externalIDPrefix = "tmdb-"

type MovieHandler struct {
	movieService service.MovieService
	logger       *slog.Logger
}

func NewMovieHandler(movieService service.MovieService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{movieService: movieService, logger: logger}
}

// List returns every local movie ordered by title.
func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	movies, err := h.movieService.List(ctx)
	if err != nil {
		respondError(c, h.logger, err, "Server error fetching movies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// Get serves a local movie, or the TMDB record when the id is "tmdb-<id>".
func (h *MovieHandler) Get(c *gin.Context) {
	param := c.Param("id")

	if raw, ok := strings.CutPrefix(param, externalIDPrefix); ok {
		externalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || externalID <= 0 {
			respondError(c, h.logger, service.ErrMovieNotFound, "")
			return
		}
		details, err := h.movieService.ExternalDetails(c.Request.Context(), externalID)
		if err != nil {
			respondError(c, h.logger, err, "Server error fetching movie")
			return
		}
		c.JSON(http.StatusOK, gin.H{"movie": details})
		return
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, h.logger, service.ErrMovieNotFound, "")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	movie, err := h.movieService.Get(ctx, id)
	if err != nil {
		respondError(c, h.logger, err, "Server error fetching movie")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

// SearchLocal matches local titles case-insensitively.
func (h *MovieHandler) SearchLocal(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	movies, err := h.movieService.SearchLocal(ctx, c.Param("query"))
	if err != nil {
		respondError(c, h.logger, err, "Server error searching movies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// SearchTMDB proxies a title search to TMDB.
func (h *MovieHandler) SearchTMDB(c *gin.Context) {
	movies, err := h.movieService.SearchExternal(c.Request.Context(), c.Param("query"))
	if err != nil {
		respondError(c, h.logger, err, "Server error searching movies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Movie title is required")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	movie, created, err := h.movieService.Create(ctx, req.ToNewMovie())
	if err != nil {
		respondError(c, h.logger, err, "Server error adding movie")
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Movie already exists", "movie": movie})
		return
	}
	h.logger.Info("movie_created", "movie_id", movie.ID, "tmdb_id", movie.ExternalID)
	c.JSON(http.StatusCreated, gin.H{"message": "Movie added successfully", "movie": movie})
}
