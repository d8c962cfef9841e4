package models

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Email              string    `gorm:"type:varchar(255);not null"`
	Phone              *string   `gorm:"type:varchar(32)"`
	Specialty          string    `gorm:"type:varchar(100);not null;index"`
	Skills             []string  `gorm:"type:text;serializer:json"`
	HourlyRateCents    int64     `gorm:"not null"`
	ExperienceYears    int       `gorm:"not null"`
	Bio                *string   `gorm:"type:text"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;index"`
	Verified           bool      `gorm:"not null"`
	Available          bool      `gorm:"not null"`
	Blacklisted        bool      `gorm:"not null"`
	StatusReason       *string   `gorm:"type:text"`
	RatingSum          int64     `gorm:"not null"`
	RatingCount        int       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type VerificationRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Version    int       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Stages []VerificationStage `gorm:"foreignKey:RecordID;references:ID"`
}

type VerificationStage struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	RecordID    uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_verification_stage"`
	StageNumber int                    `gorm:"not null;uniqueIndex:idx_verification_stage"`
	Status      string                 `gorm:"type:varchar(20);not null;index"`
	Data        map[string]interface{} `gorm:"type:text;serializer:json"`
	SubmittedAt *time.Time
	Notes       *string    `gorm:"type:text"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
}
