package user

import (
	"errors"
	"net/http"

	"courtslot/internal/api"
	"courtslot/internal/auth"
	"courtslot/internal/logger"
	"courtslot/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary      Register new user
// @Description  Creates a local account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RegisterRequest true "Signup payload"
// @Success      201 {object} user.LoginResponse
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /auth/signup [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "An account with this email already exists"})
		default:
			logger.Error("signup failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create user"})
		}
		return
	}

	metrics.RecordSignup(ProviderLocal)
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.LoginRequest true "Credentials"
// @Success      200 {object} user.LoginResponse
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Login failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleCallback godoc
// @Summary      Login with a Google ID token
// @Description  Verifies the token against the configured audience and
// @Description  creates the account on first login.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.GoogleLoginRequest true "ID token payload"
// @Success      200 {object} user.LoginResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      503 {object} api.ErrorResponse
// @Router       /auth/google/callback [post]
func (h *Handler) GoogleCallback(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "token is required"})
		return
	}

	resp, err := h.service.LoginWithGoogle(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrGoogleTokenInvalid):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid token"})
		case errors.Is(err, auth.ErrGoogleUnavailable):
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Identity provider unavailable, try again"})
		default:
			logger.Error("google login failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Authentication failed"})
		}
		return
	}

	metrics.RecordSignup(ProviderGoogle)
	c.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RefreshRequest true "Refresh token payload"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "refresh_token is required"})
		return
	}

	newAccessToken, u, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": newAccessToken,
		"user":         u,
	})
}

// GetMe godoc
// @Summary      Get current user
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} user.User
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}
