package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/pkg/utils"
)

func bookingRouter(svc *MockBookingService, identity entities.Identity) http.Handler {
	h := NewBookingHandler(svc)
	r := newRouter(identity)
	r.POST("/requests/create", h.Create)
	r.GET("/bookings/client", h.ListClient)
	r.GET("/bookings/provider", h.ListProvider)
	r.POST("/bookings/cancel", h.Cancel)
	r.POST("/bookings/rate", h.Rate)
	r.POST("/bookings/pay", h.Pay)
	r.GET("/jobs/open", h.OpenJobs)
	r.POST("/jobs/accept", h.Accept)
	r.POST("/jobs/update-status", h.UpdateStatus)
	return r
}

func TestBookingHandler_CreatePending(t *testing.T) {
	client := identityOf(entities.UserRoleClient)
	svc := &MockBookingService{}
	svc.On("Create", mock.Anything, client, mock.MatchedBy(func(in *entities.CreateBookingInput) bool {
		return in.ServiceType == "Elderly Care" && in.ScheduledDate == "2026-03-01" && *in.EstimatedCost == 500
	})).Return(&entities.Booking{
		ID:            uuid.New(),
		ServiceType:   "Elderly Care",
		Status:        entities.BookingStatusPending,
		PaymentStatus: entities.PaymentStatusUnpaid,
	}, nil)

	w := doJSON(bookingRouter(svc, client), http.MethodPost, "/requests/create", map[string]interface{}{
		"serviceType":   "Elderly Care",
		"scheduledDate": "2026-03-01",
		"scheduledTime": "09:00",
		"estimatedCost": 500,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), `"provider_id":null`)
}

func TestBookingHandler_CreateValidation(t *testing.T) {
	client := identityOf(entities.UserRoleClient)
	svc := &MockBookingService{}
	r := bookingRouter(svc, client)

	bad := []map[string]interface{}{
		{"scheduledDate": "2026-03-01", "scheduledTime": "09:00"},
		{"serviceType": "Care", "scheduledDate": "03/01/2026", "scheduledTime": "09:00"},
		{"serviceType": "Care", "scheduledDate": "2026-03-01", "scheduledTime": "9am"},
		{"serviceType": "Care", "scheduledDate": "2026-03-01", "scheduledTime": "09:00", "estimatedCost": -1},
		{"serviceType": "Care", "scheduledDate": "2026-03-01", "scheduledTime": "09:00", "estimatedCost": 1e19},
	}
	for _, body := range bad {
		w := doJSON(r, http.MethodPost, "/requests/create", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_RequiresIdentity(t *testing.T) {
	svc := &MockBookingService{}
	w := doJSON(bookingRouter(svc, entities.Identity{}), http.MethodGet, "/bookings/client", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingHandler_ListClientPaginates(t *testing.T) {
	client := identityOf(entities.UserRoleClient)
	svc := &MockBookingService{}
	svc.On("ListClient", mock.Anything, client, entities.BookingStatusCompleted, utils.GetPaginationParams(2, 5)).
		Return([]*entities.Booking{{ID: uuid.New()}}, int64(6), nil)

	w := doJSON(bookingRouter(svc, client), http.MethodGet, "/bookings/client?status=completed&page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	meta := decode(t, w)["meta"].(map[string]interface{})
	assert.EqualValues(t, 6, meta["totalCount"])
	assert.EqualValues(t, 2, meta["totalPages"])

	w = doJSON(bookingRouter(svc, client), http.MethodGet, "/bookings/client?status=done", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_OpenJobsEmptyList(t *testing.T) {
	provider := identityOf(entities.UserRoleProvider)
	svc := &MockBookingService{}
	svc.On("ListOpenJobs", mock.Anything, provider, mock.Anything).Return(nil, int64(0), nil)

	w := doJSON(bookingRouter(svc, provider), http.MethodGet, "/jobs/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobs":[]`)
}

func TestBookingHandler_AcceptConflict(t *testing.T) {
	provider := identityOf(entities.UserRoleProvider)
	id := uuid.New()
	svc := &MockBookingService{}
	svc.On("Accept", mock.Anything, provider, id).Return(nil, domainerrors.Conflict("booking already accepted by another provider"))

	w := doJSON(bookingRouter(svc, provider), http.MethodPost, "/jobs/accept", map[string]string{"bookingId": id.String()})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "booking already accepted by another provider", decode(t, w)["error"])
}

func TestBookingHandler_AcceptNotVerified(t *testing.T) {
	provider := identityOf(entities.UserRoleProvider)
	svc := &MockBookingService{}
	svc.On("Accept", mock.Anything, provider, mock.Anything).Return(nil, fmt.Errorf("accept: %w", domainerrors.ErrNotVerified))

	w := doJSON(bookingRouter(svc, provider), http.MethodPost, "/jobs/accept", map[string]string{"bookingId": uuid.NewString()})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domainerrors.CodeNotVerified, decode(t, w)["code"])
}

func TestBookingHandler_UpdateStatus(t *testing.T) {
	provider := identityOf(entities.UserRoleProvider)
	id := uuid.New()
	svc := &MockBookingService{}
	svc.On("UpdateStatus", mock.Anything, provider, mock.MatchedBy(func(in *entities.UpdateJobStatusInput) bool {
		return in.BookingID == id && in.Status == entities.BookingStatusInProgress
	})).Return(&entities.Booking{ID: id, Status: entities.BookingStatusInProgress}, nil)

	r := bookingRouter(svc, provider)
	w := doJSON(r, http.MethodPost, "/jobs/update-status", map[string]string{"bookingId": id.String(), "status": "in-progress"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/jobs/update-status", map[string]string{"bookingId": id.String(), "status": "finished"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/jobs/update-status", map[string]interface{}{"bookingId": id.String(), "status": "completed", "finalCost": 1000000.01})
	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestBookingHandler_RateErrors(t *testing.T) {
	client := identityOf(entities.UserRoleClient)
	svc := &MockBookingService{}
	svc.On("Rate", mock.Anything, client, mock.Anything).Return(nil, fmt.Errorf("rate: %w", domainerrors.ErrAlreadyRated)).Once()

	r := bookingRouter(svc, client)
	w := doJSON(r, http.MethodPost, "/bookings/rate", map[string]interface{}{"bookingId": uuid.NewString(), "rating": 5})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, domainerrors.CodeAlreadyRated, decode(t, w)["code"])

	w = doJSON(r, http.MethodPost, "/bookings/rate", map[string]interface{}{"bookingId": uuid.NewString(), "rating": 6})
	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "Rate", 1)
}

func TestBookingHandler_CancelAndPay(t *testing.T) {
	client := identityOf(entities.UserRoleClient)
	id := uuid.New()
	svc := &MockBookingService{}
	svc.On("Cancel", mock.Anything, client, &entities.CancelBookingInput{BookingID: id, Reason: "changed plans"}).
		Return(&entities.Booking{ID: id, Status: entities.BookingStatusCancelled}, nil)
	svc.On("PayWithWallet", mock.Anything, client, id).Return(nil, fmt.Errorf("debit: %w", domainerrors.ErrInsufficientFunds))

	r := bookingRouter(svc, client)
	w := doJSON(r, http.MethodPost, "/bookings/cancel", map[string]string{"bookingId": id.String(), "reason": "changed plans"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	w = doJSON(r, http.MethodPost, "/bookings/pay", map[string]string{"bookingId": id.String()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domainerrors.CodeInsufficientFunds, decode(t, w)["code"])
}
