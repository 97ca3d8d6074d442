package handler

import (
	"movielogger/internal/microservices/http-api/middleware"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth      *AuthHandler
	Movies    *MovieHandler
	Logs      *MovieLogHandler
	Watchlist *WatchlistHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the REST API on r. Routes that act for a user are
// guarded by a bearer token checked against authService.
func RegisterRoutes(r gin.IRouter, h Handlers, authService service.AuthService) {
	requireAuth := middleware.AuthMiddleware(authService)

	r.GET("/", h.Health.Welcome)
	r.GET("/check-conn", h.Health.CheckConn)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	movies := r.Group("/movies")
	{
		movies.GET("", h.Movies.List)
		movies.GET("/search/tmdb/:query", h.Movies.SearchTMDB)
		movies.GET("/search/:query", h.Movies.SearchLocal)
		movies.GET("/:id", h.Movies.Get)
		movies.POST("", requireAuth, h.Movies.Create)
	}

	userMovies := r.Group("/user-movies", requireAuth)
	{
		userMovies.GET("/logs", h.Logs.List)
		userMovies.POST("/log", h.Logs.Log)
		userMovies.DELETE("/log/:id", h.Logs.Delete)

		userMovies.GET("/watchlist", h.Watchlist.List)
		userMovies.POST("/watchlist", h.Watchlist.Add)
		userMovies.DELETE("/watchlist/:id", h.Watchlist.Remove)
	}
}
