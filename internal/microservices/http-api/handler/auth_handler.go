package handler

import (
	"log/slog"
	"net/http"

	"movielogger/internal/microservices/http-api/dto"
	"movielogger/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username, a valid email and password are required")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	user, token, err := h.authService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Server error during registration")
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    dto.FromModelToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.FromModelToUserResponse(user),
	})
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	user, err := h.authService.Me(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "Server error fetching user data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.FromModelToUserResponse(user)})
}
