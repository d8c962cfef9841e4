package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/usecases"
)

func TestServiceCatalogUsecase_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	cache := newMemoryCache()
	uc := usecases.NewServiceCatalogUsecase(repo, cache, time.Minute)

	svc := &entities.Service{ID: uuid.New(), Title: "Physiotherapy", BasePrice: 40, Active: true}
	repo.On("List", ctx, true).Return([]*entities.Service{svc}, nil).Twice()

	first, err := uc.List(ctx, true)
	require.NoError(t, err)
	second, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "Physiotherapy", second[0].Title)
	repo.AssertNumberOfCalls(t, "List", 1)

	repo.On("Create", ctx, mock.AnythingOfType("*entities.Service")).Return(nil).Once()
	_, err = uc.Create(ctx, &entities.ServiceInput{Title: "Night Nurse", BasePrice: 25})
	require.NoError(t, err)

	_, err = uc.List(ctx, true)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "List", 2)
	assert.Equal(t, 2, cache.sets)
}

func TestServiceCatalogUsecase_ListAllBypassesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	cache := newMemoryCache()
	uc := usecases.NewServiceCatalogUsecase(repo, cache, time.Minute)
	repo.On("List", ctx, false).Return([]*entities.Service{}, nil)

	_, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, cache.sets)
}

func TestServiceCatalogUsecase_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	uc := usecases.NewServiceCatalogUsecase(repo, nil, 0)

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	svc, err := uc.Create(ctx, &entities.ServiceInput{Title: " Elderly Care ", BasePrice: 19.999, PlatformFeePercent: 12})
	require.NoError(t, err)
	assert.Equal(t, "Elderly Care", svc.Title)
	assert.Equal(t, 20.0, svc.BasePrice)
	assert.True(t, svc.Active)

	inactive := false
	repo.On("GetByID", ctx, svc.ID).Return(svc, nil)
	repo.On("Update", ctx, svc).Return(nil).Once()
	updated, err := uc.Update(ctx, svc.ID, &entities.ServiceInput{Title: "Elderly Care", BasePrice: 22, Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 22.0, updated.BasePrice)

	_, err = uc.Create(ctx, &entities.ServiceInput{Title: "  "})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestServiceCatalogUsecase_Quote(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	uc := usecases.NewServiceCatalogUsecase(repo, nil, 0)
	svc := &entities.Service{ID: uuid.New(), BasePrice: 30, MinimumHours: 2, MinimumFee: 100, PlatformFeePercent: 20}
	repo.On("GetByID", ctx, svc.ID).Return(svc, nil)

	q, err := uc.Quote(ctx, svc.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, q.BilledHours)
	assert.Equal(t, 100.0, q.EstimatedCost, "minimum fee wins over 3h x 30")
	assert.Equal(t, 20.0, q.Payout.PlatformFee)
	assert.Equal(t, 80.0, q.Payout.ProviderPayout)

	q, err = uc.Quote(ctx, svc.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 150.0, q.EstimatedCost)

	_, err = uc.Quote(ctx, svc.ID, -1)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestServiceCatalogUsecase_DeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockServiceRepository)
	cache := newMemoryCache()
	cache.values["services:active"] = "[]"
	uc := usecases.NewServiceCatalogUsecase(repo, cache, time.Minute)
	id := uuid.New()
	repo.On("Delete", ctx, id).Return(nil).Once()

	require.NoError(t, uc.Delete(ctx, id))
	_, ok := cache.values["services:active"]
	assert.False(t, ok)
}
