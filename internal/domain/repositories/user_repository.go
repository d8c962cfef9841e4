package repositories

import (
	"context"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
)

// UserRepository defines auth identity operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
