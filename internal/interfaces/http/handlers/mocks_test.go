package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) SignupClient(ctx context.Context, input *entities.SignupClientInput) (*entities.AuthResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) SignupProvider(ctx context.Context, input *entities.SignupProviderInput) (*entities.AuthResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, input *entities.RefreshInput) (*entities.AuthResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.AuthResponse)
	return res, args.Error(1)
}

type MockClientService struct{ mock.Mock }

func (m *MockClientService) GetProfile(ctx context.Context, identity entities.Identity) (*entities.Client, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).(*entities.Client)
	return res, args.Error(1)
}

func (m *MockClientService) UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateClientProfileInput) (*entities.Client, error) {
	args := m.Called(ctx, identity, input)
	res, _ := args.Get(0).(*entities.Client)
	return res, args.Error(1)
}

func (m *MockClientService) ListLocations(ctx context.Context, identity entities.Identity) ([]*entities.ClientLocation, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).([]*entities.ClientLocation)
	return res, args.Error(1)
}

func (m *MockClientService) AddLocation(ctx context.Context, identity entities.Identity, input *entities.AddLocationInput) (*entities.ClientLocation, error) {
	args := m.Called(ctx, identity, input)
	res, _ := args.Get(0).(*entities.ClientLocation)
	return res, args.Error(1)
}

func (m *MockClientService) SetDefaultLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) (*entities.ClientLocation, error) {
	args := m.Called(ctx, identity, locationID)
	res, _ := args.Get(0).(*entities.ClientLocation)
	return res, args.Error(1)
}

func (m *MockClientService) DeleteLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) error {
	return m.Called(ctx, identity, locationID).Error(0)
}

func (m *MockClientService) ListFamilyMembers(ctx context.Context, identity entities.Identity) ([]*entities.FamilyMember, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).([]*entities.FamilyMember)
	return res, args.Error(1)
}

func (m *MockClientService) AddFamilyMember(ctx context.Context, identity entities.Identity, input *entities.FamilyMemberInput) (*entities.FamilyMember, error) {
	args := m.Called(ctx, identity, input)
	res, _ := args.Get(0).(*entities.FamilyMember)
	return res, args.Error(1)
}

func (m *MockClientService) UpdateFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID, input *entities.FamilyMemberInput) (*entities.FamilyMember, error) {
	args := m.Called(ctx, identity, memberID, input)
	res, _ := args.Get(0).(*entities.FamilyMember)
	return res, args.Error(1)
}

func (m *MockClientService) DeleteFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID) error {
	return m.Called(ctx, identity, memberID).Error(0)
}

func (m *MockClientService) ListFavorites(ctx context.Context, identity entities.Identity) ([]*entities.Favorite, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).([]*entities.Favorite)
	return res, args.Error(1)
}

func (m *MockClientService) AddFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.Favorite, error) {
	args := m.Called(ctx, identity, providerID)
	res, _ := args.Get(0).(*entities.Favorite)
	return res, args.Error(1)
}

func (m *MockClientService) RemoveFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) error {
	return m.Called(ctx, identity, providerID).Error(0)
}

type MockProviderService struct{ mock.Mock }

func (m *MockProviderService) GetProfile(ctx context.Context, identity entities.Identity) (*entities.Provider, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).(*entities.Provider)
	return res, args.Error(1)
}

func (m *MockProviderService) UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateProviderProfileInput) (*entities.Provider, error) {
	args := m.Called(ctx, identity, input)
	res, _ := args.Get(0).(*entities.Provider)
	return res, args.Error(1)
}

func (m *MockProviderService) SetAvailability(ctx context.Context, identity entities.Identity, available bool) (*entities.Provider, error) {
	args := m.Called(ctx, identity, available)
	res, _ := args.Get(0).(*entities.Provider)
	return res, args.Error(1)
}

func (m *MockProviderService) ListPublic(ctx context.Context, specialty string, pagination utils.PaginationParams) ([]*entities.PublicProvider, int64, error) {
	args := m.Called(ctx, specialty, pagination)
	res, _ := args.Get(0).([]*entities.PublicProvider)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockProviderService) GetPublic(ctx context.Context, id uuid.UUID) (*entities.PublicProvider, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.PublicProvider)
	return res, args.Error(1)
}

func (m *MockProviderService) Earnings(ctx context.Context, identity entities.Identity) (*entities.ProviderEarnings, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).(*entities.ProviderEarnings)
	return res, args.Error(1)
}

type MockVerificationService struct{ mock.Mock }

func (m *MockVerificationService) view(args mock.Arguments) (*entities.VerificationView, error) {
	res, _ := args.Get(0).(*entities.VerificationView)
	return res, args.Error(1)
}

func (m *MockVerificationService) GetForProvider(ctx context.Context, identity entities.Identity) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, identity))
}

func (m *MockVerificationService) Get(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, identity, providerID))
}

func (m *MockVerificationService) SubmitStage(ctx context.Context, identity entities.Identity, input *entities.SubmitStageInput) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, identity, input))
}

func (m *MockVerificationService) ReviewStage(ctx context.Context, admin entities.Identity, input *entities.ReviewStageInput) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, admin, input))
}

func (m *MockVerificationService) Approve(ctx context.Context, admin entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, admin, providerID))
}

func (m *MockVerificationService) Reject(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, admin, providerID, reason))
}

func (m *MockVerificationService) Blacklist(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, admin, providerID, reason))
}

func (m *MockVerificationService) Unapprove(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return m.view(m.Called(ctx, admin, providerID, reason))
}

func (m *MockVerificationService) ListForReview(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]*entities.ReviewQueueItem, int64, error) {
	args := m.Called(ctx, status, pagination)
	res, _ := args.Get(0).([]*entities.ReviewQueueItem)
	return res, args.Get(1).(int64), args.Error(2)
}

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) booking(args mock.Arguments) (*entities.Booking, error) {
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}

func (m *MockBookingService) page(args mock.Arguments) ([]*entities.Booking, int64, error) {
	res, _ := args.Get(0).([]*entities.Booking)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingService) Create(ctx context.Context, identity entities.Identity, input *entities.CreateBookingInput) (*entities.Booking, error) {
	return m.booking(m.Called(ctx, identity, input))
}

func (m *MockBookingService) ListClient(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	return m.page(m.Called(ctx, identity, status, pagination))
}

func (m *MockBookingService) ListProvider(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	return m.page(m.Called(ctx, identity, status, pagination))
}

func (m *MockBookingService) ListOpenJobs(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	return m.page(m.Called(ctx, identity, pagination))
}

func (m *MockBookingService) Accept(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.Booking, error) {
	return m.booking(m.Called(ctx, identity, bookingID))
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, identity entities.Identity, input *entities.UpdateJobStatusInput) (*entities.Booking, error) {
	return m.booking(m.Called(ctx, identity, input))
}

func (m *MockBookingService) Cancel(ctx context.Context, identity entities.Identity, input *entities.CancelBookingInput) (*entities.Booking, error) {
	return m.booking(m.Called(ctx, identity, input))
}

func (m *MockBookingService) Rate(ctx context.Context, identity entities.Identity, input *entities.RateBookingInput) (*entities.Booking, error) {
	return m.booking(m.Called(ctx, identity, input))
}

func (m *MockBookingService) PayWithWallet(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.BookingPayment, error) {
	args := m.Called(ctx, identity, bookingID)
	res, _ := args.Get(0).(*entities.BookingPayment)
	return res, args.Error(1)
}

type MockWalletService struct{ mock.Mock }

func (m *MockWalletService) result(args mock.Arguments) (*entities.WalletOperationResult, error) {
	res, _ := args.Get(0).(*entities.WalletOperationResult)
	return res, args.Error(1)
}

func (m *MockWalletService) Get(ctx context.Context, identity entities.Identity) (*entities.WalletSummary, error) {
	args := m.Called(ctx, identity)
	res, _ := args.Get(0).(*entities.WalletSummary)
	return res, args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	args := m.Called(ctx, identity, pagination)
	res, _ := args.Get(0).([]*entities.WalletTransaction)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) Credit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error) {
	return m.result(m.Called(ctx, identity, input, operationID))
}

func (m *MockWalletService) Debit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error) {
	return m.result(m.Called(ctx, identity, input, operationID))
}

func (m *MockWalletService) VerifyCheckout(ctx context.Context, identity entities.Identity, input *entities.VerifyPaymentInput) (*entities.WalletOperationResult, error) {
	return m.result(m.Called(ctx, identity, input))
}

type MockServiceCatalog struct{ mock.Mock }

func (m *MockServiceCatalog) List(ctx context.Context, activeOnly bool) ([]*entities.Service, error) {
	args := m.Called(ctx, activeOnly)
	res, _ := args.Get(0).([]*entities.Service)
	return res, args.Error(1)
}

func (m *MockServiceCatalog) Get(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.Service)
	return res, args.Error(1)
}

func (m *MockServiceCatalog) Create(ctx context.Context, input *entities.ServiceInput) (*entities.Service, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.Service)
	return res, args.Error(1)
}

func (m *MockServiceCatalog) Update(ctx context.Context, id uuid.UUID, input *entities.ServiceInput) (*entities.Service, error) {
	args := m.Called(ctx, id, input)
	res, _ := args.Get(0).(*entities.Service)
	return res, args.Error(1)
}

func (m *MockServiceCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockServiceCatalog) Quote(ctx context.Context, id uuid.UUID, hours float64) (*entities.Quote, error) {
	args := m.Called(ctx, id, hours)
	res, _ := args.Get(0).(*entities.Quote)
	return res, args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) ListClients(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error) {
	args := m.Called(ctx, search, pagination)
	res, _ := args.Get(0).([]*entities.Client)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ListProviders(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error) {
	args := m.Called(ctx, filter, pagination)
	res, _ := args.Get(0).([]*entities.Provider)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ListBookings(ctx context.Context, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	args := m.Called(ctx, status, pagination)
	res, _ := args.Get(0).([]*entities.Booking)
	return res, args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) Stats(ctx context.Context) (*entities.AdminStats, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*entities.AdminStats)
	return res, args.Error(1)
}
