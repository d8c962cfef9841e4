package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleClient, UserRoleProvider, UserRoleAdmin:
		return true
	}
	return false
}

// User is an authenticated identity
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is what a verified bearer token resolves to
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   UserRole
}

// DisplayName is the name on record, or one derived from the email when none is
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return NameFromEmail(i.Email)
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}

// NameFromEmail derives a display name from the local part of an email
func NameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.TrimSpace(local)
	if local == "" {
		return "Client"
	}
	return local
}

// NormalizeEmail lowercases and trims an email
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupClientInput represents input for client signup
type SignupClientInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
}

// SignupProviderInput represents input for provider signup
type SignupProviderInput struct {
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8"`
	Name            string   `json:"name" binding:"required,min=2,max=100"`
	Phone           string   `json:"phone" binding:"omitempty,max=32"`
	Specialty       string   `json:"specialty" binding:"required,max=100"`
	Skills          []string `json:"skills" binding:"omitempty,dive,max=64"`
	HourlyRate      float64  `json:"hourlyRate" binding:"gte=0,lte=1000000"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0,lte=80"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput represents input for token refresh
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned by signup, login and refresh
type AuthResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *User     `json:"user"`
	Client       *Client   `json:"client,omitempty"`
	Provider     *Provider `json:"provider,omitempty"`
}
