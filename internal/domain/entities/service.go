package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Service is an admin managed catalog entry
type Service struct {
	ID                 uuid.UUID   `json:"id"`
	Title              string      `json:"title"`
	Icon               null.String `json:"icon"`
	Description        null.String `json:"description"`
	BasePrice          float64     `json:"base_price"`
	MinimumHours       float64     `json:"minimum_hours"`
	MinimumFee         float64     `json:"minimum_fee"`
	PlatformFeePercent float64     `json:"platform_fee_percent"`
	Active             bool        `json:"active"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// Payout is the split of a booking total between platform and provider
type Payout struct {
	Total          float64 `json:"total"`
	FeePercent     float64 `json:"fee_percent"`
	PlatformFee    float64 `json:"platform_fee"`
	ProviderPayout float64 `json:"provider_payout"`
}

// CalculatePayout computes payout = total - total*feePercent/100, rounded to cents
func CalculatePayout(total, feePercent float64) Payout {
	fee := RoundCents(total * feePercent / 100)
	return Payout{
		Total:          RoundCents(total),
		FeePercent:     feePercent,
		PlatformFee:    fee,
		ProviderPayout: RoundCents(total - fee),
	}
}

// Quote is the price estimate of a service for a number of hours
type Quote struct {
	ServiceID     uuid.UUID `json:"service_id"`
	Hours         float64   `json:"hours"`
	BilledHours   float64   `json:"billed_hours"`
	EstimatedCost float64   `json:"estimated_cost"`
	Payout        Payout    `json:"payout"`
}

// QuoteFor prices hours of s: base price per billed hour, billed hours never
// below the minimum, and the total never below the minimum fee.
func (s *Service) QuoteFor(hours float64) Quote {
	billed := math.Max(hours, s.MinimumHours)
	total := math.Max(s.BasePrice*billed, s.MinimumFee)
	return Quote{
		ServiceID:     s.ID,
		Hours:         hours,
		BilledHours:   billed,
		EstimatedCost: RoundCents(total),
		Payout:        CalculatePayout(total, s.PlatformFeePercent),
	}
}

// ServiceInput represents a catalog create or update
type ServiceInput struct {
	Title              string  `json:"title" binding:"required,max=100"`
	Icon               string  `json:"icon" binding:"omitempty,max=100"`
	Description        string  `json:"description" binding:"omitempty,max=2000"`
	BasePrice          float64 `json:"basePrice" binding:"gte=0,lte=1000000"`
	MinimumHours       float64 `json:"minimumHours" binding:"gte=0,lte=24"`
	MinimumFee         float64 `json:"minimumFee" binding:"gte=0,lte=1000000"`
	PlatformFeePercent float64 `json:"platformFeePercent" binding:"gte=0,lte=100"`
	Active             *bool   `json:"active"`
}
