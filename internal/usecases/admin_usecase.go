package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/utils"
)

// AdminUsecase serves the admin console listings and dashboard
type AdminUsecase struct {
	clientRepo       repositories.ClientRepository
	providerRepo     repositories.ProviderRepository
	bookingRepo      repositories.BookingRepository
	verificationRepo repositories.VerificationRepository
	walletRepo       repositories.WalletRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	clientRepo repositories.ClientRepository,
	providerRepo repositories.ProviderRepository,
	bookingRepo repositories.BookingRepository,
	verificationRepo repositories.VerificationRepository,
	walletRepo repositories.WalletRepository,
) *AdminUsecase {
	return &AdminUsecase{
		clientRepo:       clientRepo,
		providerRepo:     providerRepo,
		bookingRepo:      bookingRepo,
		verificationRepo: verificationRepo,
		walletRepo:       walletRepo,
	}
}

func (u *AdminUsecase) ListClients(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error) {
	return u.clientRepo.List(ctx, search, pagination)
}

func (u *AdminUsecase) ListProviders(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error) {
	return u.providerRepo.List(ctx, filter, pagination)
}

func (u *AdminUsecase) ListBookings(ctx context.Context, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	return u.bookingRepo.List(ctx, entities.BookingFilter{Status: status}, pagination)
}

// Stats gathers the dashboard counters
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.AdminStats, error) {
	stats := &entities.AdminStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, total, err := u.clientRepo.List(ctx, "", utils.GetPaginationParams(1, 1))
		stats.Clients = total
		return err
	})
	g.Go(func() error {
		counts, blacklisted, err := u.providerRepo.CountByStatus(ctx)
		stats.Providers = counts
		stats.BlacklistedProviders = blacklisted
		return err
	})
	g.Go(func() error {
		counts, err := u.bookingRepo.CountByStatus(ctx)
		stats.Bookings = counts
		return err
	})
	g.Go(func() error {
		_, total, err := u.verificationRepo.ListProviderIDsWithStageStatus(ctx, entities.StageStatusSubmitted, utils.GetPaginationParams(1, 1))
		stats.PendingReviews = total
		return err
	})
	g.Go(func() error {
		credits, debits, err := u.walletRepo.Totals(ctx)
		stats.WalletCredits = entities.FromCents(credits)
		stats.WalletDebits = entities.FromCents(debits)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
