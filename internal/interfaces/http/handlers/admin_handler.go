package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/utils"
)

type adminService interface {
	ListClients(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error)
	ListProviders(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error)
	ListBookings(ctx context.Context, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	Stats(ctx context.Context) (*entities.AdminStats, error)
}

// AdminHandler handles admin console listings
type AdminHandler struct {
	adminUsecase adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListClients GET /api/v1/admin/clients?search=
func (h *AdminHandler) ListClients(c *gin.Context) {
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	clients, total, err := h.adminUsecase.ListClients(c.Request.Context(), c.Query("search"), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if clients == nil {
		clients = []*entities.Client{}
	}
	response.Paginated(c, http.StatusOK, "clients", clients, total, pagination)
}

// ListProviders GET /api/v1/admin/providers?status=&specialty=&search=
func (h *AdminHandler) ListProviders(c *gin.Context) {
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	filter := entities.ProviderFilter{
		Specialty:          c.Query("specialty"),
		VerificationStatus: entities.VerificationStatus(c.Query("status")),
		Search:             c.Query("search"),
	}
	switch filter.VerificationStatus {
	case "", entities.VerificationStatusPending, entities.VerificationStatusApproved, entities.VerificationStatusRejected:
	default:
		response.Error(c, domainerrors.BadRequest("Invalid verification status"))
		return
	}
	providers, total, err := h.adminUsecase.ListProviders(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if providers == nil {
		providers = []*entities.Provider{}
	}
	response.Paginated(c, http.StatusOK, "providers", providers, total, pagination)
}

// ListBookings GET /api/v1/admin/bookings?status=
func (h *AdminHandler) ListBookings(c *gin.Context) {
	status, ok := bookingStatusQuery(c)
	if !ok {
		return
	}
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	bookings, total, err := h.adminUsecase.ListBookings(c.Request.Context(), status, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if bookings == nil {
		bookings = []*entities.Booking{}
	}
	response.Paginated(c, http.StatusOK, "bookings", bookings, total, pagination)
}

// Stats GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
