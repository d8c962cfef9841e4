package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/usecases"
)

func TestAdminUsecase_Stats(t *testing.T) {
	clients := new(MockClientRepository)
	providers := new(MockProviderRepository)
	bookings := new(MockBookingRepository)
	records := new(MockVerificationRepository)
	wallets := new(MockWalletRepository)

	clients.On("List", mock.Anything, "", mock.Anything).Return([]*entities.Client{}, int64(7), nil)
	providers.On("CountByStatus", mock.Anything).Return(map[entities.VerificationStatus]int64{
		entities.VerificationStatusApproved: 3,
		entities.VerificationStatusPending:  2,
	}, int64(1), nil)
	bookings.On("CountByStatus", mock.Anything).Return(map[entities.BookingStatus]int64{
		entities.BookingStatusCompleted: 4,
	}, nil)
	records.On("ListProviderIDsWithStageStatus", mock.Anything, entities.StageStatusSubmitted, mock.Anything).
		Return([]uuid.UUID{}, int64(2), nil)
	wallets.On("Totals", mock.Anything).Return(int64(150000), int64(42050), nil)

	uc := usecases.NewAdminUsecase(clients, providers, bookings, records, wallets)
	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Clients)
	assert.Equal(t, int64(3), stats.Providers[entities.VerificationStatusApproved])
	assert.Equal(t, int64(1), stats.BlacklistedProviders)
	assert.Equal(t, int64(4), stats.Bookings[entities.BookingStatusCompleted])
	assert.Equal(t, int64(2), stats.PendingReviews)
	assert.Equal(t, 1500.0, stats.WalletCredits)
	assert.Equal(t, 420.5, stats.WalletDebits)
}
