package usecases

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/utils"
)

const activeServicesKey = "services:active"

// Cache is the small key/value store the catalog caches into
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ServiceCatalogUsecase manages the service catalog and quotes
type ServiceCatalogUsecase struct {
	serviceRepo repositories.ServiceRepository
	cache       Cache
	ttl         time.Duration
}

// NewServiceCatalogUsecase creates a new catalog usecase. A nil cache disables caching.
func NewServiceCatalogUsecase(serviceRepo repositories.ServiceRepository, cache Cache, ttl time.Duration) *ServiceCatalogUsecase {
	return &ServiceCatalogUsecase{
		serviceRepo: serviceRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

// List returns the catalog. The active listing is served from cache when possible.
func (u *ServiceCatalogUsecase) List(ctx context.Context, activeOnly bool) ([]*entities.Service, error) {
	if !activeOnly || u.cache == nil {
		return u.serviceRepo.List(ctx, activeOnly)
	}

	if raw, ok, err := u.cache.Get(ctx, activeServicesKey); err != nil {
		logger.Warn(ctx, "Service cache read failed", zap.Error(err))
	} else if ok {
		var services []*entities.Service
		if err := json.Unmarshal([]byte(raw), &services); err == nil {
			return services, nil
		}
		logger.Warn(ctx, "Discarding unreadable service cache entry")
	}

	services, err := u.serviceRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(services); err == nil {
		if err := u.cache.Set(ctx, activeServicesKey, string(raw), u.ttl); err != nil {
			logger.Warn(ctx, "Service cache write failed", zap.Error(err))
		}
	}
	return services, nil
}

// Get returns one catalog entry
func (u *ServiceCatalogUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	return u.serviceRepo.GetByID(ctx, id)
}

// Create adds a catalog entry
func (u *ServiceCatalogUsecase) Create(ctx context.Context, input *entities.ServiceInput) (*entities.Service, error) {
	ts := now()
	svc := &entities.Service{
		ID:        utils.GenerateUUIDv7(),
		Active:    true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := applyServiceInput(svc, input); err != nil {
		return nil, err
	}
	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return svc, nil
}

// Update replaces a catalog entry's fields
func (u *ServiceCatalogUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.ServiceInput) (*entities.Service, error) {
	svc, err := u.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyServiceInput(svc, input); err != nil {
		return nil, err
	}
	svc.UpdatedAt = now()
	if err := u.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return svc, nil
}

// Delete soft deletes a catalog entry
func (u *ServiceCatalogUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx)
	return nil
}

// Quote prices a number of hours of a service
func (u *ServiceCatalogUsecase) Quote(ctx context.Context, id uuid.UUID, hours float64) (*entities.Quote, error) {
	if hours < 0 {
		return nil, domainerrors.BadRequest("hours cannot be negative")
	}
	svc, err := u.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q := svc.QuoteFor(hours)
	return &q, nil
}

func (u *ServiceCatalogUsecase) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, activeServicesKey); err != nil {
		logger.Warn(ctx, "Service cache invalidation failed", zap.Error(err))
	}
}

func applyServiceInput(svc *entities.Service, input *entities.ServiceInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domainerrors.BadRequest("title is required")
	}
	svc.Title = title
	svc.Icon = null.NewString(input.Icon, input.Icon != "")
	svc.Description = null.NewString(input.Description, input.Description != "")
	svc.BasePrice = entities.RoundCents(input.BasePrice)
	svc.MinimumHours = input.MinimumHours
	svc.MinimumFee = entities.RoundCents(input.MinimumFee)
	svc.PlatformFeePercent = input.PlatformFeePercent
	if input.Active != nil {
		svc.Active = *input.Active
	}
	return nil
}
