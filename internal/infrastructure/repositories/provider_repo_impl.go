package repositories

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/models"
	"careconnect.backend/pkg/utils"
)

// ProviderRepository implements provider data operations
type ProviderRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create creates a new provider
func (r *ProviderRepository) Create(ctx context.Context, provider *entities.Provider) error {
	m := &models.Provider{
		ID:                 provider.ID,
		UserID:             provider.UserID,
		Name:               provider.Name,
		Email:              provider.Email,
		Phone:              provider.Phone.Ptr(),
		Specialty:          provider.Specialty,
		Skills:             provider.Skills,
		HourlyRateCents:    entities.ToCents(provider.HourlyRate),
		ExperienceYears:    provider.ExperienceYears,
		Bio:                provider.Bio.Ptr(),
		VerificationStatus: string(provider.VerificationStatus),
		Verified:           provider.Verified,
		Available:          provider.Available,
		Blacklisted:        provider.Blacklisted,
		StatusReason:       provider.StatusReason.Ptr(),
		CreatedAt:          provider.CreatedAt,
		UpdatedAt:          provider.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a provider by ID
func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	var m models.Provider
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return providerToEntity(&m), nil
}

// GetByIDForUpdate gets a provider and locks its row on drivers that support it
func (r *ProviderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Provider, error) {
	var m models.Provider
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return providerToEntity(&m), nil
}

// GetByUserID gets a provider by auth user ID
func (r *ProviderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Provider, error) {
	var m models.Provider
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return providerToEntity(&m), nil
}

// UpdateProfile updates the self-managed profile fields
func (r *ProviderRepository) UpdateProfile(ctx context.Context, provider *entities.Provider) error {
	result := GetDB(ctx, r.db).Model(&models.Provider{}).Where("id = ?", provider.ID).Updates(map[string]interface{}{
		"name":              provider.Name,
		"phone":             provider.Phone.Ptr(),
		"specialty":         provider.Specialty,
		"skills":            skillsColumn(provider.Skills),
		"hourly_rate_cents": entities.ToCents(provider.HourlyRate),
		"experience_years":  provider.ExperienceYears,
		"bio":               provider.Bio.Ptr(),
		"updated_at":        time.Now().UTC(),
	})
	return affected(result)
}

// UpdateStatus writes the admin-controlled account fields
func (r *ProviderRepository) UpdateStatus(ctx context.Context, provider *entities.Provider) error {
	result := GetDB(ctx, r.db).Model(&models.Provider{}).Where("id = ?", provider.ID).Updates(map[string]interface{}{
		"verification_status": string(provider.VerificationStatus),
		"verified":            provider.Verified,
		"available":           provider.Available,
		"blacklisted":         provider.Blacklisted,
		"status_reason":       provider.StatusReason.Ptr(),
		"updated_at":          time.Now().UTC(),
	})
	return affected(result)
}

// SetAvailable toggles availability
func (r *ProviderRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	result := GetDB(ctx, r.db).Model(&models.Provider{}).Where("id = ?", id).Updates(map[string]interface{}{
		"available":  available,
		"updated_at": time.Now().UTC(),
	})
	return affected(result)
}

// AddRating folds one rating into the provider's running average
func (r *ProviderRepository) AddRating(ctx context.Context, id uuid.UUID, rating int) error {
	result := GetDB(ctx, r.db).Model(&models.Provider{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating_sum":   gorm.Expr("rating_sum + ?", rating),
		"rating_count": gorm.Expr("rating_count + 1"),
	})
	return affected(result)
}

// List lists providers matching filter
func (r *ProviderRepository) List(ctx context.Context, filter entities.ProviderFilter, pagination utils.PaginationParams) ([]*entities.Provider, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Provider{})
	if filter.Specialty != "" {
		query = query.Where("LOWER(specialty) = ?", strings.ToLower(filter.Specialty))
	}
	if filter.VerificationStatus != "" {
		query = query.Where("verification_status = ?", string(filter.VerificationStatus))
	}
	if filter.OnlyBookable {
		query = query.Where("verified = ? AND available = ? AND blacklisted = ? AND verification_status = ?",
			true, true, false, string(entities.VerificationStatusApproved))
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Provider
	if err := query.Order("created_at DESC").Offset(pagination.CalculateOffset()).Limit(pagination.Limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*entities.Provider, 0, len(ms))
	for i := range ms {
		items = append(items, providerToEntity(&ms[i]))
	}
	return items, total, nil
}

// CountByStatus counts providers per verification status, plus the blacklisted total
func (r *ProviderRepository) CountByStatus(ctx context.Context) (map[entities.VerificationStatus]int64, int64, error) {
	db := GetDB(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Provider{}).Select("verification_status AS status, COUNT(*) AS count").Group("verification_status").Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	counts := make(map[entities.VerificationStatus]int64, len(rows))
	for _, row := range rows {
		counts[entities.VerificationStatus(row.Status)] = row.Count
	}

	var blacklisted int64
	if err := db.Model(&models.Provider{}).Where("blacklisted = ?", true).Count(&blacklisted).Error; err != nil {
		return nil, 0, err
	}
	return counts, blacklisted, nil
}

// skillsColumn encodes skills the way the json serializer stores them, since
// map updates bypass serializers.
func skillsColumn(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	return jsonString(skills)
}

func providerToEntity(m *models.Provider) *entities.Provider {
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}
	var avg float64
	if m.RatingCount > 0 {
		avg = math.Round(float64(m.RatingSum)/float64(m.RatingCount)*100) / 100
	}
	return &entities.Provider{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Email:              m.Email,
		Phone:              null.StringFromPtr(m.Phone),
		Specialty:          m.Specialty,
		Skills:             skills,
		HourlyRate:         entities.FromCents(m.HourlyRateCents),
		ExperienceYears:    m.ExperienceYears,
		Bio:                null.StringFromPtr(m.Bio),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		Verified:           m.Verified,
		Available:          m.Available,
		Blacklisted:        m.Blacklisted,
		StatusReason:       null.StringFromPtr(m.StatusReason),
		RatingAverage:      avg,
		RatingCount:        m.RatingCount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
