package repositories

import (
	"context"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

// ProviderRepository defines provider data operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *entities.Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error)
	// GetByIDForUpdate locks the row for the rest of the transaction where the driver supports it
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Provider, error)
	UpdateProfile(ctx context.Context, provider *entities.Provider) error
	// UpdateStatus writes verification status, verified, available, blacklisted and status reason
	UpdateStatus(ctx context.Context, provider *entities.Provider) error
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	AddRating(ctx context.Context, id uuid.UUID, rating int) error
	List(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error)
	CountByStatus(ctx context.Context) (map[entities.VerificationStatus]int64, int64, error)
}

// VerificationRepository defines verification record operations
type VerificationRepository interface {
	Create(ctx context.Context, rec *entities.VerificationRecord) error
	GetByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.VerificationRecord, error)
	// Save writes all stages when the stored version equals rec.Version and
	// bumps it. A stale version returns ErrConflict.
	Save(ctx context.Context, rec *entities.VerificationRecord) error
	ListProviderIDsWithStageStatus(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]uuid.UUID, int64, error)
}
