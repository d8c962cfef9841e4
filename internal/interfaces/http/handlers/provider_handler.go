package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/utils"
)

type providerService interface {
	GetProfile(ctx context.Context, identity entities.Identity) (*entities.Provider, error)
	UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateProviderProfileInput) (*entities.Provider, error)
	SetAvailability(ctx context.Context, identity entities.Identity, available bool) (*entities.Provider, error)
	ListPublic(ctx context.Context, specialty string, pagination utils.PaginationParams) ([]*entities.PublicProvider, int64, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*entities.PublicProvider, error)
	Earnings(ctx context.Context, identity entities.Identity) (*entities.ProviderEarnings, error)
}

// ProviderHandler serves provider profiles and the public provider directory
type ProviderHandler struct {
	providerUsecase providerService
}

func NewProviderHandler(providerUsecase providerService) *ProviderHandler {
	return &ProviderHandler{providerUsecase: providerUsecase}
}

// GetProfile GET /api/v1/provider/profile
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	provider, err := h.providerUsecase.GetProfile(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": provider})
}

// UpdateProfile PUT /api/v1/provider/profile
func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.UpdateProviderProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	provider, err := h.providerUsecase.UpdateProfile(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": provider})
}

// SetAvailability PUT /api/v1/provider/availability
func (h *ProviderHandler) SetAvailability(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.SetAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	provider, err := h.providerUsecase.SetAvailability(c.Request.Context(), identity, *input.Available)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": provider})
}

// Earnings GET /api/v1/provider/earnings
func (h *ProviderHandler) Earnings(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	earnings, err := h.providerUsecase.Earnings(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"earnings": earnings})
}

// List GET /api/v1/providers?specialty=
func (h *ProviderHandler) List(c *gin.Context) {
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	providers, total, err := h.providerUsecase.ListPublic(c.Request.Context(), c.Query("specialty"), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if providers == nil {
		providers = []*entities.PublicProvider{}
	}
	response.Paginated(c, http.StatusOK, "providers", providers, total, pagination)
}

// Get GET /api/v1/providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "provider")
	if !ok {
		return
	}
	provider, err := h.providerUsecase.GetPublic(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": provider})
}
