package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationStatus is the account level verification status of a provider
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Provider is a care professional offering services
type Provider struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"user_id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              null.String        `json:"phone"`
	Specialty          string             `json:"specialty"`
	Skills             []string           `json:"skills"`
	HourlyRate         float64            `json:"hourly_rate"`
	ExperienceYears    int                `json:"experience_years"`
	Bio                null.String        `json:"bio"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	Verified           bool               `json:"verified"`
	Available          bool               `json:"available"`
	Blacklisted        bool               `json:"blacklisted"`
	StatusReason       null.String        `json:"status_reason"`
	RatingAverage      float64            `json:"rating_average"`
	RatingCount        int                `json:"rating_count"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// PublicProvider is the view of a provider shown to clients
type PublicProvider struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Specialty       string      `json:"specialty"`
	Skills          []string    `json:"skills"`
	HourlyRate      float64     `json:"hourly_rate"`
	ExperienceYears int         `json:"experience_years"`
	Bio             null.String `json:"bio"`
	Available       bool        `json:"available"`
	RatingAverage   float64     `json:"rating_average"`
	RatingCount     int         `json:"rating_count"`
}

// Public strips contact and moderation fields
func (p *Provider) Public() *PublicProvider {
	return &PublicProvider{
		ID:              p.ID,
		Name:            p.Name,
		Specialty:       p.Specialty,
		Skills:          p.Skills,
		HourlyRate:      p.HourlyRate,
		ExperienceYears: p.ExperienceYears,
		Bio:             p.Bio,
		Available:       p.Available,
		RatingAverage:   p.RatingAverage,
		RatingCount:     p.RatingCount,
	}
}

// ProviderFilter narrows provider listings
type ProviderFilter struct {
	Specialty          string
	VerificationStatus VerificationStatus
	OnlyBookable       bool
	Search             string
}

// UpdateProviderProfileInput represents a provider profile update
type UpdateProviderProfileInput struct {
	Name            *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Phone           *string  `json:"phone" binding:"omitempty,max=32"`
	Specialty       *string  `json:"specialty" binding:"omitempty,max=100"`
	Skills          []string `json:"skills" binding:"omitempty,dive,max=64"`
	HourlyRate      *float64 `json:"hourlyRate" binding:"omitempty,gte=0,lte=1000000"`
	ExperienceYears *int     `json:"experienceYears" binding:"omitempty,gte=0,lte=80"`
	Bio             *string  `json:"bio" binding:"omitempty,max=2000"`
}

// SetAvailabilityInput toggles whether a provider takes jobs
type SetAvailabilityInput struct {
	Available *bool `json:"available" binding:"required"`
}

// ProviderEarnings summarises payouts over completed bookings
type ProviderEarnings struct {
	CompletedJobs int64   `json:"completed_jobs"`
	TotalBilled   float64 `json:"total_billed"`
	PlatformFees  float64 `json:"platform_fees"`
	TotalPayout   float64 `json:"total_payout"`
}

// ProviderActionInput carries an optional reason for admin actions
type ProviderActionInput struct {
	Reason string `json:"reason" binding:"omitempty,max=1000"`
}
