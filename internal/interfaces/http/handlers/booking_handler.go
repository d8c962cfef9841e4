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

type bookingService interface {
	Create(ctx context.Context, identity entities.Identity, input *entities.CreateBookingInput) (*entities.Booking, error)
	ListClient(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	ListProvider(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	ListOpenJobs(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	Accept(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, identity entities.Identity, input *entities.UpdateJobStatusInput) (*entities.Booking, error)
	Cancel(ctx context.Context, identity entities.Identity, input *entities.CancelBookingInput) (*entities.Booking, error)
	Rate(ctx context.Context, identity entities.Identity, input *entities.RateBookingInput) (*entities.Booking, error)
	PayWithWallet(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.BookingPayment, error)
}

// BookingHandler serves care requests for clients and jobs for providers
type BookingHandler struct {
	bookingUsecase bookingService
}

func NewBookingHandler(bookingUsecase bookingService) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// Create POST /api/v1/requests/create
func (h *BookingHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	booking, err := h.bookingUsecase.Create(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

// ListClient GET /api/v1/bookings/client?status=
func (h *BookingHandler) ListClient(c *gin.Context) {
	h.list(c, h.bookingUsecase.ListClient)
}

// ListProvider GET /api/v1/bookings/provider?status=
func (h *BookingHandler) ListProvider(c *gin.Context) {
	h.list(c, h.bookingUsecase.ListProvider)
}

type bookingListFunc func(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)

func (h *BookingHandler) list(c *gin.Context, fn bookingListFunc) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	status, ok := bookingStatusQuery(c)
	if !ok {
		return
	}
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	bookings, total, err := fn(c.Request.Context(), identity, status, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if bookings == nil {
		bookings = []*entities.Booking{}
	}
	response.Paginated(c, http.StatusOK, "bookings", bookings, total, pagination)
}

// OpenJobs GET /api/v1/jobs/open
func (h *BookingHandler) OpenJobs(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	jobs, total, err := h.bookingUsecase.ListOpenJobs(c.Request.Context(), identity, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if jobs == nil {
		jobs = []*entities.Booking{}
	}
	response.Paginated(c, http.StatusOK, "jobs", jobs, total, pagination)
}

// Accept POST /api/v1/jobs/accept
func (h *BookingHandler) Accept(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.BookingIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	booking, err := h.bookingUsecase.Accept(c.Request.Context(), identity, input.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// UpdateStatus POST /api/v1/jobs/update-status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.UpdateJobStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	booking, err := h.bookingUsecase.UpdateStatus(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// Cancel POST /api/v1/bookings/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.CancelBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	booking, err := h.bookingUsecase.Cancel(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// Rate POST /api/v1/bookings/rate
func (h *BookingHandler) Rate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.RateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	booking, err := h.bookingUsecase.Rate(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// Pay settles a booking from the client's wallet
// POST /api/v1/bookings/pay
func (h *BookingHandler) Pay(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.BookingIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	payment, err := h.bookingUsecase.PayWithWallet(c.Request.Context(), identity, input.BookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}
