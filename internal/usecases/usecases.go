package usecases

import (
	"context"
	"time"

	"careconnect.backend/internal/domain/entities"
)

// now is the clock used for every timestamp written by usecases
var now = func() time.Time { return time.Now().UTC() }

// EventPublisher delivers domain events after their transaction commits.
// Delivery is best effort; implementations log their own failures.
type EventPublisher interface {
	Publish(ctx context.Context, event entities.Event)
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, entities.Event) {}

// ClientResolver maps an identity to its client row
type ClientResolver interface {
	ResolveClient(ctx context.Context, identity entities.Identity) (*entities.Client, error)
}

// ProviderResolver maps an identity to its provider row
type ProviderResolver interface {
	ResolveProvider(ctx context.Context, identity entities.Identity) (*entities.Provider, error)
}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return NopPublisher{}
	}
	return p
}
