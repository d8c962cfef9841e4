package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title              string    `gorm:"type:varchar(100);not null"`
	Icon               *string   `gorm:"type:varchar(100)"`
	Description        *string   `gorm:"type:text"`
	BasePriceCents     int64     `gorm:"not null"`
	MinimumHours       float64   `gorm:"not null"`
	MinimumFeeCents    int64     `gorm:"not null"`
	PlatformFeePercent float64   `gorm:"not null"`
	Active             bool      `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
