package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

// MockUnitOfWork runs fn inline
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *entities.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *MockClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *entities.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error) {
	args := m.Called(ctx, search, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Client), args.Get(1).(int64), args.Error(2)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, loc *entities.ClientLocation) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ClientLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ClientLocation), args.Error(1)
}

func (m *MockLocationRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientLocation, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ClientLocation), args.Error(1)
}

func (m *MockLocationRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) ClearDefault(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockLocationRepository) SetDefault(ctx context.Context, clientID, id uuid.UUID) error {
	args := m.Called(ctx, clientID, id)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, clientID, id uuid.UUID) error {
	args := m.Called(ctx, clientID, id)
	return args.Error(0)
}

type MockFamilyMemberRepository struct {
	mock.Mock
}

func (m *MockFamilyMemberRepository) Create(ctx context.Context, member *entities.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockFamilyMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FamilyMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FamilyMember), args.Error(1)
}

func (m *MockFamilyMemberRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.FamilyMember, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FamilyMember), args.Error(1)
}

func (m *MockFamilyMemberRepository) Update(ctx context.Context, member *entities.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockFamilyMemberRepository) Delete(ctx context.Context, clientID, id uuid.UUID) error {
	args := m.Called(ctx, clientID, id)
	return args.Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, fav *entities.Favorite) error {
	args := m.Called(ctx, fav)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Get(ctx context.Context, clientID, providerID uuid.UUID) (*entities.Favorite, error) {
	args := m.Called(ctx, clientID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Favorite, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, clientID, providerID uuid.UUID) error {
	args := m.Called(ctx, clientID, providerID)
	return args.Error(0)
}

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) Create(ctx context.Context, provider *entities.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

func (m *MockProviderRepository) UpdateProfile(ctx context.Context, provider *entities.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) UpdateStatus(ctx context.Context, provider *entities.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockProviderRepository) AddRating(ctx context.Context, id uuid.UUID, rating int) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockProviderRepository) List(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Provider), args.Get(1).(int64), args.Error(2)
}

func (m *MockProviderRepository) CountByStatus(ctx context.Context) (map[entities.VerificationStatus]int64, int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(map[entities.VerificationStatus]int64), args.Get(1).(int64), args.Error(2)
}

type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, rec *entities.VerificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockVerificationRepository) GetByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.VerificationRecord, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) Save(ctx context.Context, rec *entities.VerificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockVerificationRepository) ListProviderIDsWithStageStatus(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]uuid.UUID, int64, error) {
	args := m.Called(ctx, status, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]uuid.UUID), args.Get(1).(int64), args.Error(2)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter entities.BookingFilter, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListOpen(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	args := m.Called(ctx, providerID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ApplyStatus(ctx context.Context, update entities.StatusUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockBookingRepository) ApplyRating(ctx context.Context, update entities.RatingUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.BookingStatus]int64), args.Error(1)
}

func (m *MockBookingRepository) ProviderEarnings(ctx context.Context, providerID uuid.UUID) (*entities.ProviderEarnings, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProviderEarnings), args.Error(1)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetOrCreate(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletAccount), args.Error(1)
}

func (m *MockWalletRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletAccount), args.Error(1)
}

func (m *MockWalletRepository) AdjustBalance(ctx context.Context, walletID uuid.UUID, deltaCents int64) (*entities.WalletAccount, error) {
	args := m.Called(ctx, walletID, deltaCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletAccount), args.Error(1)
}

func (m *MockWalletRepository) CreateTransaction(ctx context.Context, tx *entities.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) GetTransactionByOperationID(ctx context.Context, walletID uuid.UUID, operationID string) (*entities.WalletTransaction, error) {
	args := m.Called(ctx, walletID, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) GetTransactionByCheckoutRef(ctx context.Context, ref string) (*entities.WalletTransaction, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	args := m.Called(ctx, walletID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletRepository) Totals(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, svc *entities.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Service, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, svc *entities.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockClientResolver struct {
	mock.Mock
}

func (m *MockClientResolver) ResolveClient(ctx context.Context, identity entities.Identity) (*entities.Client, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

type MockProviderResolver struct {
	mock.Mock
}

func (m *MockProviderResolver) ResolveProvider(ctx context.Context, identity entities.Identity) (*entities.Provider, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []entities.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event entities.Event) {
	p.events = append(p.events, event)
}

// memoryCache is an in-process Cache
type memoryCache struct {
	values map[string]string
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func clientIdentity() entities.Identity {
	return entities.Identity{UserID: uuid.New(), Email: "client@example.com", Role: entities.UserRoleClient}
}

func providerIdentity() entities.Identity {
	return entities.Identity{UserID: uuid.New(), Email: "carer@example.com", Role: entities.UserRoleProvider}
}

func adminIdentity() entities.Identity {
	return entities.Identity{UserID: uuid.New(), Email: "admin@example.com", Role: entities.UserRoleAdmin}
}

// approvedRecord returns a record with all four stages approved
func approvedRecord(providerID uuid.UUID) *entities.VerificationRecord {
	rec := entities.NewVerificationRecord(uuid.New(), providerID, time.Now())
	for i := range rec.Stages {
		rec.Stages[i].Status = entities.StageStatusApproved
	}
	return rec
}
