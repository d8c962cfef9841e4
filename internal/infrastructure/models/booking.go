package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProviderID          *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID           *uuid.UUID `gorm:"type:uuid"`
	ServiceType         string     `gorm:"type:varchar(100);not null"`
	FamilyMemberID      *uuid.UUID `gorm:"type:uuid"`
	LocationID          *uuid.UUID `gorm:"type:uuid"`
	ScheduledDate       string     `gorm:"type:varchar(10);not null"`
	ScheduledTime       string     `gorm:"type:varchar(5);not null"`
	DurationHours       float64    `gorm:"not null"`
	EstimatedCostCents  int64      `gorm:"not null"`
	FinalCostCents      *int64
	PlatformFeeCents    *int64
	ProviderPayoutCents *int64
	Status              string  `gorm:"type:varchar(20);not null;index"`
	PaymentStatus       string  `gorm:"type:varchar(20);not null"`
	Notes               *string `gorm:"type:text"`
	CancelReason        *string `gorm:"type:text"`
	Rating              *int
	Review              *string `gorm:"type:text"`
	RatedAt             *time.Time
	Version             int `gorm:"not null"`
	AcceptedAt          *time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	PaidAt              *time.Time
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
}
