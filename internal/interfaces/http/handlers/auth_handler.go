package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/interfaces/http/response"
)

type authService interface {
	SignupClient(ctx context.Context, input *entities.SignupClientInput) (*entities.AuthResponse, error)
	SignupProvider(ctx context.Context, input *entities.SignupProviderInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Refresh(ctx context.Context, input *entities.RefreshInput) (*entities.AuthResponse, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// SignupClient registers a client account
// POST /api/v1/auth/signup/client
func (h *AuthHandler) SignupClient(c *gin.Context) {
	var input entities.SignupClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authUsecase.SignupClient(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// SignupProvider registers a provider account with a pending verification record
// POST /api/v1/auth/signup/provider
func (h *AuthHandler) SignupProvider(c *gin.Context) {
	var input entities.SignupProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authUsecase.SignupProvider(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authUsecase.Refresh(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
