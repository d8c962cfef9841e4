package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/interfaces/http/response"
)

type clientService interface {
	GetProfile(ctx context.Context, identity entities.Identity) (*entities.Client, error)
	UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateClientProfileInput) (*entities.Client, error)
	ListLocations(ctx context.Context, identity entities.Identity) ([]*entities.ClientLocation, error)
	AddLocation(ctx context.Context, identity entities.Identity, input *entities.AddLocationInput) (*entities.ClientLocation, error)
	SetDefaultLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) (*entities.ClientLocation, error)
	DeleteLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) error
	ListFamilyMembers(ctx context.Context, identity entities.Identity) ([]*entities.FamilyMember, error)
	AddFamilyMember(ctx context.Context, identity entities.Identity, input *entities.FamilyMemberInput) (*entities.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID, input *entities.FamilyMemberInput) (*entities.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID) error
	ListFavorites(ctx context.Context, identity entities.Identity) ([]*entities.Favorite, error)
	AddFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.Favorite, error)
	RemoveFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) error
}

// ClientHandler serves the client's own profile, locations, family members and favorites
type ClientHandler struct {
	clientUsecase clientService
}

func NewClientHandler(clientUsecase clientService) *ClientHandler {
	return &ClientHandler{clientUsecase: clientUsecase}
}

// GetProfile GET /api/v1/client/profile
func (h *ClientHandler) GetProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	client, err := h.clientUsecase.GetProfile(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"client": client})
}

// UpdateProfile PUT /api/v1/client/profile
func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.UpdateClientProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	client, err := h.clientUsecase.UpdateProfile(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"client": client})
}

// ListLocations GET /api/v1/client/locations
func (h *ClientHandler) ListLocations(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	locations, err := h.clientUsecase.ListLocations(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if locations == nil {
		locations = []*entities.ClientLocation{}
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locations})
}

// AddLocation POST /api/v1/client/locations
func (h *ClientHandler) AddLocation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.AddLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	location, err := h.clientUsecase.AddLocation(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"location": location})
}

// SetDefaultLocation PUT /api/v1/client/locations/:id/default
func (h *ClientHandler) SetDefaultLocation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "location")
	if !ok {
		return
	}
	location, err := h.clientUsecase.SetDefaultLocation(c.Request.Context(), identity, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"location": location})
}

// DeleteLocation DELETE /api/v1/client/locations/:id
func (h *ClientHandler) DeleteLocation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "location")
	if !ok {
		return
	}
	if err := h.clientUsecase.DeleteLocation(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Location deleted"})
}

// ListFamilyMembers GET /api/v1/client/family-members
func (h *ClientHandler) ListFamilyMembers(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	members, err := h.clientUsecase.ListFamilyMembers(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if members == nil {
		members = []*entities.FamilyMember{}
	}
	response.Success(c, http.StatusOK, gin.H{"family_members": members})
}

// AddFamilyMember POST /api/v1/client/family-members
func (h *ClientHandler) AddFamilyMember(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.FamilyMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	member, err := h.clientUsecase.AddFamilyMember(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"family_member": member})
}

// UpdateFamilyMember PUT /api/v1/client/family-members/:id
func (h *ClientHandler) UpdateFamilyMember(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "family member")
	if !ok {
		return
	}
	var input entities.FamilyMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	member, err := h.clientUsecase.UpdateFamilyMember(c.Request.Context(), identity, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"family_member": member})
}

// DeleteFamilyMember DELETE /api/v1/client/family-members/:id
func (h *ClientHandler) DeleteFamilyMember(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "family member")
	if !ok {
		return
	}
	if err := h.clientUsecase.DeleteFamilyMember(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Family member deleted"})
}

// ListFavorites GET /api/v1/client/favorites
func (h *ClientHandler) ListFavorites(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	favorites, err := h.clientUsecase.ListFavorites(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if favorites == nil {
		favorites = []*entities.Favorite{}
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite POST /api/v1/client/favorites
func (h *ClientHandler) AddFavorite(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.AddFavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	favorite, err := h.clientUsecase.AddFavorite(c.Request.Context(), identity, input.ProviderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"favorite": favorite})
}

// RemoveFavorite DELETE /api/v1/client/favorites/:providerId
func (h *ClientHandler) RemoveFavorite(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "providerId", "provider")
	if !ok {
		return
	}
	if err := h.clientUsecase.RemoveFavorite(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Favorite removed"})
}
