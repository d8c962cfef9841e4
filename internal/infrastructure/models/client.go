package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     *string   `gorm:"type:varchar(32)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClientLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(50);not null"`
	Address   string    `gorm:"type:text;not null"`
	Latitude  *float64
	Longitude *float64
	IsDefault bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FamilyMember struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Relationship string    `gorm:"type:varchar(50);not null"`
	DateOfBirth  *string   `gorm:"type:varchar(10)"`
	Notes        *string   `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_pair"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_pair"`
	CreatedAt  time.Time
}
