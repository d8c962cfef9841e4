package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Client is a care recipient account
type Client struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     null.String `json:"phone"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ClientLocation is a saved service address
type ClientLocation struct {
	ID        uuid.UUID    `json:"id"`
	ClientID  uuid.UUID    `json:"client_id"`
	Label     string       `json:"label"`
	Address   string       `json:"address"`
	Latitude  null.Float64 `json:"latitude"`
	Longitude null.Float64 `json:"longitude"`
	IsDefault bool         `json:"is_default"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FamilyMember is a person a client books care for
type FamilyMember struct {
	ID           uuid.UUID   `json:"id"`
	ClientID     uuid.UUID   `json:"client_id"`
	Name         string      `json:"name"`
	Relationship string      `json:"relationship"`
	DateOfBirth  null.String `json:"date_of_birth"`
	Notes        null.String `json:"notes"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Favorite links a client to a provider they saved
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Provider   *Provider `json:"provider,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpdateClientProfileInput represents a profile update
type UpdateClientProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
}

// AddLocationInput represents a new saved location
type AddLocationInput struct {
	Label     string   `json:"label" binding:"required,max=50"`
	Address   string   `json:"address" binding:"required,max=500"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	IsDefault bool     `json:"isDefault"`
}

// FamilyMemberInput represents a family member create or update
type FamilyMemberInput struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Relationship string `json:"relationship" binding:"required,max=50"`
	DateOfBirth  string `json:"dateOfBirth" binding:"omitempty,isodate"`
	Notes        string `json:"notes" binding:"omitempty,max=2000"`
}

// AddFavoriteInput represents a favorite provider to save
type AddFavoriteInput struct {
	ProviderID uuid.UUID `json:"providerId" binding:"required"`
}
