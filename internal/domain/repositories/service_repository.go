package repositories

import (
	"context"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
)

// ServiceRepository defines catalog operations
type ServiceRepository interface {
	Create(ctx context.Context, svc *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*entities.Service, error)
	Update(ctx context.Context, svc *entities.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
