package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/models"
)

// ServiceRepository implements catalog operations
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a catalog entry
func (r *ServiceRepository) Create(ctx context.Context, svc *entities.Service) error {
	m := &models.Service{
		ID:                 svc.ID,
		Title:              svc.Title,
		Icon:               svc.Icon.Ptr(),
		Description:        svc.Description.Ptr(),
		BasePriceCents:     entities.ToCents(svc.BasePrice),
		MinimumHours:       svc.MinimumHours,
		MinimumFeeCents:    entities.ToCents(svc.MinimumFee),
		PlatformFeePercent: svc.PlatformFeePercent,
		Active:             svc.Active,
		CreatedAt:          svc.CreatedAt,
		UpdatedAt:          svc.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a catalog entry
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return serviceToEntity(&m), nil
}

// List lists catalog entries by title
func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Service, error) {
	query := GetDB(ctx, r.db).Model(&models.Service{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var ms []models.Service
	if err := query.Order("title ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Service, 0, len(ms))
	for i := range ms {
		items = append(items, serviceToEntity(&ms[i]))
	}
	return items, nil
}

// Update updates a catalog entry
func (r *ServiceRepository) Update(ctx context.Context, svc *entities.Service) error {
	result := GetDB(ctx, r.db).Model(&models.Service{}).Where("id = ?", svc.ID).Updates(map[string]interface{}{
		"title":                svc.Title,
		"icon":                 svc.Icon.Ptr(),
		"description":          svc.Description.Ptr(),
		"base_price_cents":     entities.ToCents(svc.BasePrice),
		"minimum_hours":        svc.MinimumHours,
		"minimum_fee_cents":    entities.ToCents(svc.MinimumFee),
		"platform_fee_percent": svc.PlatformFeePercent,
		"active":               svc.Active,
		"updated_at":           time.Now().UTC(),
	})
	return affected(result)
}

// Delete soft deletes a catalog entry
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.Service{}))
}

func serviceToEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:                 m.ID,
		Title:              m.Title,
		Icon:               null.StringFromPtr(m.Icon),
		Description:        null.StringFromPtr(m.Description),
		BasePrice:          entities.FromCents(m.BasePriceCents),
		MinimumHours:       m.MinimumHours,
		MinimumFee:         entities.FromCents(m.MinimumFeeCents),
		PlatformFeePercent: m.PlatformFeePercent,
		Active:             m.Active,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
