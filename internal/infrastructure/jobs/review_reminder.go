package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/utils"
)

type reviewQueue interface {
	ListProviderIDsWithStageStatus(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]uuid.UUID, int64, error)
}

// Mailer sends one html email
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ReviewReminderJob emails the admin inbox when verification stages wait for review
type ReviewReminderJob struct {
	queue  reviewQueue
	mailer Mailer
	to     string
}

func NewReviewReminderJob(queue reviewQueue, mailer Mailer, to string) *ReviewReminderJob {
	return &ReviewReminderJob{queue: queue, mailer: mailer, to: to}
}

func (j *ReviewReminderJob) Name() string { return "review_reminder" }

func (j *ReviewReminderJob) Run(ctx context.Context) error {
	if j.mailer == nil || j.to == "" {
		return nil
	}

	_, waiting, err := j.queue.ListProviderIDsWithStageStatus(ctx, entities.StageStatusSubmitted, utils.GetPaginationParams(1, 1))
	if err != nil {
		return fmt.Errorf("count review queue: %w", err)
	}
	if waiting == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d provider(s) awaiting verification review", waiting)
	body := fmt.Sprintf("<p>%d provider(s) have submitted verification stages that are waiting for review.</p>", waiting)
	if err := j.mailer.Send(ctx, j.to, subject, body); err != nil {
		return fmt.Errorf("send review reminder: %w", err)
	}

	logger.Info(ctx, "Sent review reminder", zap.Int64("waiting", waiting))
	return nil
}
