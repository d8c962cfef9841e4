package entities

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event
type EventType string

const (
	EventVerificationUpdated EventType = "verification.updated"
	EventBookingUpdated      EventType = "booking.updated"
)

// Event is published after a state change commits
type Event struct {
	Type        EventType   `json:"type"`
	RecipientID uuid.UUID   `json:"recipient_id"`
	Email       string      `json:"-"`
	Subject     string      `json:"-"`
	Summary     string      `json:"summary"`
	Payload     interface{} `json:"payload"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
