package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "careconnect.backend/internal/domain/errors"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks whether the client has paid for a booking
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// BookingActor is the party driving a booking transition
type BookingActor string

const (
	ActorClient   BookingActor = "client"
	ActorProvider BookingActor = "provider"
)

var bookingTransitions = map[BookingActor]map[BookingStatus][]BookingStatus{
	ActorProvider: {
		BookingStatusPending:    {BookingStatusAccepted},
		BookingStatusAccepted:   {BookingStatusInProgress, BookingStatusCancelled},
		BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	},
	ActorClient: {
		BookingStatusPending: {BookingStatusCancelled},
	},
}

// CanTransition reports whether actor may move a booking from one status to another
func CanTransition(actor BookingActor, from, to BookingStatus) bool {
	for _, next := range bookingTransitions[actor][from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when the move is not allowed
func CheckTransition(actor BookingActor, from, to BookingStatus) error {
	if !CanTransition(actor, from, to) {
		return fmt.Errorf("%s cannot move booking from %s to %s: %w", actor, from, to, domainerrors.ErrInvalidTransition)
	}
	return nil
}

// Booking is a care request and, once accepted, a job
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	ClientID       uuid.UUID     `json:"client_id"`
	ProviderID     *uuid.UUID    `json:"provider_id"`
	ServiceID      *uuid.UUID    `json:"service_id"`
	ServiceType    string        `json:"service_type"`
	FamilyMemberID *uuid.UUID    `json:"family_member_id"`
	LocationID     *uuid.UUID    `json:"location_id"`
	ScheduledDate  string        `json:"scheduled_date"`
	ScheduledTime  string        `json:"scheduled_time"`
	DurationHours  float64       `json:"duration_hours"`
	EstimatedCost  float64       `json:"estimated_cost"`
	FinalCost      null.Float64  `json:"final_cost"`
	PlatformFee    null.Float64  `json:"platform_fee"`
	ProviderPayout null.Float64  `json:"provider_payout"`
	Status         BookingStatus `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Notes          null.String   `json:"notes"`
	CancelReason   null.String   `json:"cancel_reason"`
	Rating         null.Int      `json:"rating"`
	Review         null.String   `json:"review"`
	RatedAt        null.Time     `json:"rated_at"`
	Version        int           `json:"version"`
	AcceptedAt     null.Time     `json:"accepted_at"`
	StartedAt      null.Time     `json:"started_at"`
	CompletedAt    null.Time     `json:"completed_at"`
	CancelledAt    null.Time     `json:"cancelled_at"`
	PaidAt         null.Time     `json:"paid_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// AmountDue is the final cost when set, otherwise the estimate
func (b *Booking) AmountDue() float64 {
	if b.FinalCost.Valid {
		return b.FinalCost.Float64
	}
	return b.EstimatedCost
}

// ScheduledAt parses the scheduled date and time in loc
func (b *Booking) ScheduledAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.ScheduledDate+" "+b.ScheduledTime, loc)
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	ClientID   *uuid.UUID
	ProviderID *uuid.UUID
	Status     BookingStatus
}

// StatusUpdate describes a guarded status change applied by a repository
type StatusUpdate struct {
	BookingID      uuid.UUID
	From           BookingStatus
	To             BookingStatus
	ProviderID     *uuid.UUID
	ExpectVersion  int
	FinalCost      null.Float64
	PlatformFee    null.Float64
	ProviderPayout null.Float64
	CancelReason   null.String
	At             time.Time
}

// RatingUpdate describes a one-time rating write
type RatingUpdate struct {
	BookingID     uuid.UUID
	ClientID      uuid.UUID
	Rating        int
	Review        null.String
	ExpectVersion int
	At            time.Time
}

// CreateBookingInput is a client's care request
type CreateBookingInput struct {
	ServiceType    string     `json:"serviceType" binding:"required,max=100"`
	ServiceID      *uuid.UUID `json:"serviceId"`
	ProviderID     *uuid.UUID `json:"providerId"`
	FamilyMemberID *uuid.UUID `json:"familyMemberId"`
	LocationID     *uuid.UUID `json:"locationId"`
	ScheduledDate  string     `json:"scheduledDate" binding:"required,isodate"`
	ScheduledTime  string     `json:"scheduledTime" binding:"required,hhmm"`
	DurationHours  float64    `json:"durationHours" binding:"omitempty,gt=0,lte=24"`
	EstimatedCost  *float64   `json:"estimatedCost" binding:"omitempty,gte=0,lte=1000000"`
	Notes          string     `json:"notes" binding:"omitempty,max=2000"`
}

// BookingIDInput references a booking
type BookingIDInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

// UpdateJobStatusInput is a provider moving a job along
type UpdateJobStatusInput struct {
	BookingID uuid.UUID     `json:"bookingId" binding:"required"`
	Status    BookingStatus `json:"status" binding:"required,booking_status"`
	FinalCost *float64      `json:"finalCost" binding:"omitempty,gte=0,lte=1000000"`
	Reason    string        `json:"reason" binding:"omitempty,max=1000"`
}

// CancelBookingInput is a client cancelling a pending request
type CancelBookingInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Reason    string    `json:"reason" binding:"omitempty,max=1000"`
}

// RateBookingInput is a client's rating of a completed booking
type RateBookingInput struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Review    string    `json:"review" binding:"omitempty,max=2000"`
}

// BookingPayment is a booking settled from the client wallet
type BookingPayment struct {
	Booking     *Booking           `json:"booking"`
	Transaction *WalletTransaction `json:"transaction"`
}
