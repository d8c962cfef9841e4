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

// BookingRepository implements booking data operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	m := &models.Booking{
		ID:                  booking.ID,
		ClientID:            booking.ClientID,
		ProviderID:          booking.ProviderID,
		ServiceID:           booking.ServiceID,
		ServiceType:         booking.ServiceType,
		FamilyMemberID:      booking.FamilyMemberID,
		LocationID:          booking.LocationID,
		ScheduledDate:       booking.ScheduledDate,
		ScheduledTime:       booking.ScheduledTime,
		DurationHours:       booking.DurationHours,
		EstimatedCostCents:  entities.ToCents(booking.EstimatedCost),
		FinalCostCents:      centsPtr(booking.FinalCost),
		PlatformFeeCents:    centsPtr(booking.PlatformFee),
		ProviderPayoutCents: centsPtr(booking.ProviderPayout),
		Status:              string(booking.Status),
		PaymentStatus:       string(booking.PaymentStatus),
		Notes:               booking.Notes.Ptr(),
		Version:             booking.Version,
		CreatedAt:           booking.CreatedAt,
		UpdatedAt:           booking.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return bookingToEntity(&m), nil
}

// List lists bookings matching filter, newest first
func (r *BookingRepository) List(ctx context.Context, filter entities.BookingFilter, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Booking{})
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	return r.page(query, "created_at DESC", pagination)
}

// ListOpen lists pending bookings a provider may accept
func (r *BookingRepository) ListOpen(ctx context.Context, providerID uuid.UUID, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Booking{}).
		Where("status = ?", string(entities.BookingStatusPending)).
		Where("provider_id IS NULL OR provider_id = ?", providerID)
	return r.page(query, "scheduled_date ASC, scheduled_time ASC", pagination)
}

func (r *BookingRepository) page(query *gorm.DB, order string, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Booking
	if err := query.Order(order).Offset(pagination.CalculateOffset()).Limit(pagination.Limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*entities.Booking, 0, len(ms))
	for i := range ms {
		items = append(items, bookingToEntity(&ms[i]))
	}
	return items, total, nil
}

// ApplyStatus moves a booking from update.From to update.To only when the row
// still matches the expected status, version and provider.
func (r *BookingRepository) ApplyStatus(ctx context.Context, update entities.StatusUpdate) error {
	query := GetDB(ctx, r.db).Model(&models.Booking{}).
		Where("id = ? AND status = ?", update.BookingID, string(update.From))
	if update.ExpectVersion > 0 {
		query = query.Where("version = ?", update.ExpectVersion)
	}

	values := map[string]interface{}{
		"status":     string(update.To),
		"version":    gorm.Expr("version + 1"),
		"updated_at": update.At,
	}

	switch update.To {
	case entities.BookingStatusAccepted:
		if update.ProviderID == nil {
			return fmt.Errorf("accept without provider: %w", domainerrors.ErrInvalidInput)
		}
		query = query.Where("provider_id IS NULL OR provider_id = ?", *update.ProviderID)
		values["provider_id"] = *update.ProviderID
		values["accepted_at"] = update.At
	case entities.BookingStatusInProgress:
		values["started_at"] = update.At
	case entities.BookingStatusCompleted:
		values["completed_at"] = update.At
		values["final_cost_cents"] = centsPtr(update.FinalCost)
		values["platform_fee_cents"] = centsPtr(update.PlatformFee)
		values["provider_payout_cents"] = centsPtr(update.ProviderPayout)
	case entities.BookingStatusCancelled:
		values["cancelled_at"] = update.At
		values["cancel_reason"] = update.CancelReason.Ptr()
	}
	if update.To != entities.BookingStatusAccepted && update.ProviderID != nil {
		query = query.Where("provider_id = ?", *update.ProviderID)
	}

	result := query.Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking %s no longer %s: %w", update.BookingID, update.From, domainerrors.ErrConflict)
	}
	return nil
}

// ApplyRating stores a rating once on a completed booking owned by the client
func (r *BookingRepository) ApplyRating(ctx context.Context, update entities.RatingUpdate) error {
	result := GetDB(ctx, r.db).Model(&models.Booking{}).
		Where("id = ? AND client_id = ? AND status = ? AND rating IS NULL AND version = ?",
			update.BookingID, update.ClientID, string(entities.BookingStatusCompleted), update.ExpectVersion).
		Updates(map[string]interface{}{
			"rating":     update.Rating,
			"review":     update.Review.Ptr(),
			"rated_at":   update.At,
			"version":    gorm.Expr("version + 1"),
			"updated_at": update.At,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking %s rating precondition failed: %w", update.BookingID, domainerrors.ErrConflict)
	}
	return nil
}

// MarkPaid flips an unpaid booking to paid
func (r *BookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", id, string(entities.PaymentStatusUnpaid)).
		Updates(map[string]interface{}{
			"payment_status": string(entities.PaymentStatusPaid),
			"paid_at":        at,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", id, domainerrors.ErrAlreadyPaid)
	}
	return nil
}

// ListStalePending returns pending bookings created before the cutoff
func (r *BookingRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error) {
	var ms []models.Booking
	err := GetDB(ctx, r.db).
		Where("status = ? AND created_at < ?", string(entities.BookingStatusPending), before).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Booking, 0, len(ms))
	for i := range ms {
		items = append(items, bookingToEntity(&ms[i]))
	}
	return items, nil
}

// CountByStatus counts bookings per status
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).Model(&models.Booking{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[entities.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[entities.BookingStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// ProviderEarnings sums completed bookings assigned to a provider
func (r *BookingRepository) ProviderEarnings(ctx context.Context, providerID uuid.UUID) (*entities.ProviderEarnings, error) {
	var row struct {
		Jobs   int64
		Billed int64
		Fees   int64
		Payout int64
	}
	err := GetDB(ctx, r.db).Model(&models.Booking{}).
		Select("COUNT(*) AS jobs, COALESCE(SUM(final_cost_cents), 0) AS billed, COALESCE(SUM(platform_fee_cents), 0) AS fees, COALESCE(SUM(provider_payout_cents), 0) AS payout").
		Where("provider_id = ? AND status = ?", providerID, string(entities.BookingStatusCompleted)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entities.ProviderEarnings{
		CompletedJobs: row.Jobs,
		TotalBilled:   entities.FromCents(row.Billed),
		PlatformFees:  entities.FromCents(row.Fees),
		TotalPayout:   entities.FromCents(row.Payout),
	}, nil
}

func centsPtr(v null.Float64) *int64 {
	if !v.Valid {
		return nil
	}
	c := entities.ToCents(v.Float64)
	return &c
}

func centsToNull(c *int64) null.Float64 {
	if c == nil {
		return null.Float64{}
	}
	return null.Float64From(entities.FromCents(*c))
}

func bookingToEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:             m.ID,
		ClientID:       m.ClientID,
		ProviderID:     m.ProviderID,
		ServiceID:      m.ServiceID,
		ServiceType:    m.ServiceType,
		FamilyMemberID: m.FamilyMemberID,
		LocationID:     m.LocationID,
		ScheduledDate:  m.ScheduledDate,
		ScheduledTime:  m.ScheduledTime,
		DurationHours:  m.DurationHours,
		EstimatedCost:  entities.FromCents(m.EstimatedCostCents),
		FinalCost:      centsToNull(m.FinalCostCents),
		PlatformFee:    centsToNull(m.PlatformFeeCents),
		ProviderPayout: centsToNull(m.ProviderPayoutCents),
		Status:         entities.BookingStatus(m.Status),
		PaymentStatus:  entities.PaymentStatus(m.PaymentStatus),
		Notes:          null.StringFromPtr(m.Notes),
		CancelReason:   null.StringFromPtr(m.CancelReason),
		Rating:         null.IntFromPtr(m.Rating),
		Review:         null.StringFromPtr(m.Review),
		RatedAt:        null.TimeFromPtr(m.RatedAt),
		Version:        m.Version,
		AcceptedAt:     null.TimeFromPtr(m.AcceptedAt),
		StartedAt:      null.TimeFromPtr(m.StartedAt),
		CompletedAt:    null.TimeFromPtr(m.CompletedAt),
		CancelledAt:    null.TimeFromPtr(m.CancelledAt),
		PaidAt:         null.TimeFromPtr(m.PaidAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
