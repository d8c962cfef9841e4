package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
)

type serviceCatalog interface {
	List(ctx context.Context, activeOnly bool) ([]*entities.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	Create(ctx context.Context, input *entities.ServiceInput) (*entities.Service, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.ServiceInput) (*entities.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Quote(ctx context.Context, id uuid.UUID, hours float64) (*entities.Quote, error)
}

// ServiceHandler serves the service catalog
type ServiceHandler struct {
	catalog serviceCatalog
}

func NewServiceHandler(catalog serviceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// List GET /api/v1/services
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	if services == nil {
		services = []*entities.Service{}
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

// Get GET /api/v1/services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}
	svc, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

// Quote GET /api/v1/services/:id/quote?hours=
func (h *ServiceHandler) Quote(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}
	hours := 0.0
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("hours must be a number"))
			return
		}
		hours = parsed
	}
	quote, err := h.catalog.Quote(c.Request.Context(), id, hours)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

// AdminList returns active and inactive services
// GET /api/v1/admin/services
func (h *ServiceHandler) AdminList(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	if services == nil {
		services = []*entities.Service{}
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

// Create POST /api/v1/admin/services
func (h *ServiceHandler) Create(c *gin.Context) {
	var input entities.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	svc, err := h.catalog.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

// Update PUT /api/v1/admin/services/:id
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}
	var input entities.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	svc, err := h.catalog.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

// Delete DELETE /api/v1/admin/services/:id
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "service")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Service deleted"})
}
