package repositories

import (
	"context"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

// ClientRepository defines client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Client, error)
	Update(ctx context.Context, client *entities.Client) error
	List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error)
}

// LocationRepository defines client location operations
type LocationRepository interface {
	Create(ctx context.Context, loc *entities.ClientLocation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ClientLocation, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientLocation, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	ClearDefault(ctx context.Context, clientID uuid.UUID) error
	SetDefault(ctx context.Context, clientID, id uuid.UUID) error
	Delete(ctx context.Context, clientID, id uuid.UUID) error
}

// FamilyMemberRepository defines family member operations
type FamilyMemberRepository interface {
	Create(ctx context.Context, member *entities.FamilyMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.FamilyMember, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.FamilyMember, error)
	Update(ctx context.Context, member *entities.FamilyMember) error
	Delete(ctx context.Context, clientID, id uuid.UUID) error
}

// FavoriteRepository defines favorite provider operations
type FavoriteRepository interface {
	Add(ctx context.Context, fav *entities.Favorite) error
	Get(ctx context.Context, clientID, providerID uuid.UUID) (*entities.Favorite, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Favorite, error)
	Remove(ctx context.Context, clientID, providerID uuid.UUID) error
}
