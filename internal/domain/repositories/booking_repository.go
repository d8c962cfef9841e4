package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

// BookingRepository defines booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	List(ctx context.Context, filter entities.BookingFilter, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	ListOpen(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Booking, int64, error)
	// ApplyStatus performs a guarded transition; zero rows matched returns ErrConflict
	ApplyStatus(ctx context.Context, update entities.StatusUpdate) error
	// ApplyRating writes a rating once; zero rows matched returns ErrConflict
	ApplyRating(ctx context.Context, update entities.RatingUpdate) error
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error)
	CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error)
	ProviderEarnings(ctx context.Context, providerID uuid.UUID) (*entities.ProviderEarnings, error)
}
