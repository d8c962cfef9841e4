package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/infrastructure/models"
	"careconnect.backend/pkg/utils"
)

// VerificationRepository implements verification record operations
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create inserts the record and its stages
func (r *VerificationRepository) Create(ctx context.Context, rec *entities.VerificationRecord) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		m := &models.VerificationRecord{
			ID:         rec.ID,
			ProviderID: rec.ProviderID,
			Version:    rec.Version,
			CreatedAt:  rec.CreatedAt,
			UpdatedAt:  rec.UpdatedAt,
		}
		if err := tx.Omit("Stages").Create(m).Error; err != nil {
			return mapError(err)
		}

		stages := make([]models.VerificationStage, 0, len(rec.Stages))
		for _, s := range rec.Stages {
			stages = append(stages, models.VerificationStage{
				ID:          utils.GenerateUUIDv7(),
				RecordID:    rec.ID,
				StageNumber: s.Stage,
				Status:      string(s.Status),
				Data:        s.Data,
				SubmittedAt: s.SubmittedAt.Ptr(),
				Notes:       s.Notes.Ptr(),
				ReviewedBy:  s.ReviewedBy,
				ReviewedAt:  s.ReviewedAt.Ptr(),
			})
		}
		return mapError(tx.Create(&stages).Error)
	})
}

// GetByProviderID loads a provider's record with stages in order
func (r *VerificationRepository) GetByProviderID(ctx context.Context, providerID uuid.UUID) (*entities.VerificationRecord, error) {
	var m models.VerificationRecord
	err := GetDB(ctx, r.db).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("stage_number ASC") }).
		Where("provider_id = ?", providerID).
		First(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return verificationToEntity(&m), nil
}

// Save writes every stage under an optimistic version check
func (r *VerificationRepository) Save(ctx context.Context, rec *entities.VerificationRecord) error {
	now := rec.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	err := GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VerificationRecord{}).
			Where("id = ? AND version = ?", rec.ID, rec.Version).
			Updates(map[string]interface{}{
				"version":    gorm.Expr("version + 1"),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("verification record %s changed concurrently: %w", rec.ID, domainerrors.ErrConflict)
		}

		for _, s := range rec.Stages {
			var data interface{}
			if s.Data != nil {
				data = jsonString(s.Data)
			}
			res := tx.Model(&models.VerificationStage{}).
				Where("record_id = ? AND stage_number = ?", rec.ID, s.Stage).
				Updates(map[string]interface{}{
					"status":       string(s.Status),
					"data":         data,
					"submitted_at": s.SubmittedAt.Ptr(),
					"notes":        s.Notes.Ptr(),
					"reviewed_by":  s.ReviewedBy,
					"reviewed_at":  s.ReviewedAt.Ptr(),
				})
			if err := affected(res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	rec.Version++
	rec.UpdatedAt = now
	return nil
}

// ListProviderIDsWithStageStatus pages providers that have at least one stage in status
func (r *VerificationRepository) ListProviderIDsWithStageStatus(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]uuid.UUID, int64, error) {
	db := GetDB(ctx, r.db)
	const exists = "EXISTS (SELECT 1 FROM verification_stages s WHERE s.record_id = verification_records.id AND s.status = ?)"

	var total int64
	if err := db.Model(&models.VerificationRecord{}).Where(exists, string(status)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uuid.UUID
	err := db.Model(&models.VerificationRecord{}).
		Where(exists, string(status)).
		Order("updated_at ASC").
		Offset(pagination.CalculateOffset()).
		Limit(pagination.Limit).
		Pluck("provider_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func verificationToEntity(m *models.VerificationRecord) *entities.VerificationRecord {
	rec := &entities.VerificationRecord{
		ID:         m.ID,
		ProviderID: m.ProviderID,
		Stages:     make([]entities.VerificationStage, 0, len(m.Stages)),
		Version:    m.Version,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for _, s := range m.Stages {
		rec.Stages = append(rec.Stages, entities.VerificationStage{
			Stage:       s.StageNumber,
			Name:        entities.StageName(s.StageNumber),
			Status:      entities.StageStatus(s.Status),
			Data:        s.Data,
			SubmittedAt: null.TimeFromPtr(s.SubmittedAt),
			Notes:       null.StringFromPtr(s.Notes),
			ReviewedBy:  s.ReviewedBy,
			ReviewedAt:  null.TimeFromPtr(s.ReviewedAt),
		})
	}
	return rec
}
