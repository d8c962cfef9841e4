package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/infrastructure/metrics"
	"careconnect.backend/pkg/logger"
)

const expiryBatchSize = 100

type staleBookingStore interface {
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entities.Booking, error)
	ApplyStatus(ctx context.Context, update entities.StatusUpdate) error
}

// BookingExpiryJob cancels pending requests nobody accepted in time
type BookingExpiryJob struct {
	repo       staleBookingStore
	staleAfter time.Duration
	now        func() time.Time
}

func NewBookingExpiryJob(repo staleBookingStore, staleAfter time.Duration) *BookingExpiryJob {
	return &BookingExpiryJob{repo: repo, staleAfter: staleAfter, now: time.Now}
}

func (j *BookingExpiryJob) Name() string { return "booking_expiry" }

func (j *BookingExpiryJob) Run(ctx context.Context) error {
	at := j.now().UTC()
	stale, err := j.repo.ListStalePending(ctx, at.Add(-j.staleAfter), expiryBatchSize)
	if err != nil {
		return fmt.Errorf("list stale bookings: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	expired := 0
	for _, b := range stale {
		err := j.repo.ApplyStatus(ctx, entities.StatusUpdate{
			BookingID:     b.ID,
			From:          entities.BookingStatusPending,
			To:            entities.BookingStatusCancelled,
			ExpectVersion: b.Version,
			CancelReason:  null.StringFrom("expired"),
			At:            at,
		})
		switch {
		case err == nil:
			expired++
			metrics.BookingTransitions.WithLabelValues(string(entities.BookingStatusCancelled)).Inc()
		case errors.Is(err, domainerrors.ErrConflict):
			// accepted or cancelled since the listing
		default:
			return fmt.Errorf("expire booking %s: %w", b.ID, err)
		}
	}

	logger.Info(ctx, "Expired stale bookings", zap.Int("count", expired), zap.Int("candidates", len(stale)))
	return nil
}
