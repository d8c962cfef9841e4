package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/internal/infrastructure/metrics"
	"careconnect.backend/pkg/utils"
)

// Verification actions, also used as metric labels
const (
	actionSubmitStage  = "submit_stage"
	actionApproveStage = "approve_stage"
	actionRejectStage  = "reject_stage"
	actionApprove      = "approve"
	actionReject       = "reject"
	actionBlacklist    = "blacklist"
	actionUnapprove    = "unapprove"
)

// VerificationUsecase runs the four stage provider verification workflow and
// the admin account actions. Every write locks the provider row, saves the
// record under its version and updates the account in one transaction so that
// verified is true only when all stages are approved and the account is approved.
type VerificationUsecase struct {
	providers        ProviderResolver
	providerRepo     repositories.ProviderRepository
	verificationRepo repositories.VerificationRepository
	uow              repositories.UnitOfWork
	publisher        EventPublisher
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	providers ProviderResolver,
	providerRepo repositories.ProviderRepository,
	verificationRepo repositories.VerificationRepository,
	uow repositories.UnitOfWork,
	publisher EventPublisher,
) *VerificationUsecase {
	return &VerificationUsecase{
		providers:        providers,
		providerRepo:     providerRepo,
		verificationRepo: verificationRepo,
		uow:              uow,
		publisher:        publisherOrNop(publisher),
	}
}

// GetForProvider returns the caller's own verification state
func (u *VerificationUsecase) GetForProvider(ctx context.Context, identity entities.Identity) (*entities.VerificationView, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, p)
}

// Get returns a provider's verification state to that provider or an admin
func (u *VerificationUsecase) Get(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error) {
	p, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && p.UserID != identity.UserID {
		return nil, domainerrors.ErrForbidden
	}
	return u.view(ctx, p)
}

// SubmitStage records a provider's submission of one stage
func (u *VerificationUsecase) SubmitStage(ctx context.Context, identity entities.Identity, input *entities.SubmitStageInput) (*entities.VerificationView, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.mutate(ctx, p.ID, actionSubmitStage, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		if p.Blacklisted {
			return domainerrors.ErrBlacklisted
		}
		return rec.Submit(input.Stage, input.Data, now())
	})
}

// ReviewStage applies an admin decision to a submitted stage. Approving the
// last stage approves the account; rejecting a stage of an approved account
// puts it back to pending.
func (u *VerificationUsecase) ReviewStage(ctx context.Context, admin entities.Identity, input *entities.ReviewStageInput) (*entities.VerificationView, error) {
	action := actionApproveStage
	if input.Decision == entities.StageStatusRejected {
		action = actionRejectStage
	}
	return u.mutate(ctx, input.ProviderID, action, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		if err := rec.Review(input.Stage, input.Decision, admin.UserID, input.Notes, now()); err != nil {
			return err
		}
		switch {
		case rec.AllStagesApproved() && !p.Blacklisted:
			setAccount(p, entities.VerificationStatusApproved, "")
		case input.Decision == entities.StageStatusRejected && p.VerificationStatus == entities.VerificationStatusApproved:
			setAccount(p, entities.VerificationStatusPending, input.Notes)
		}
		return nil
	})
}

// Approve approves every submitted stage and the account at once. A stage
// that was never submitted blocks it.
func (u *VerificationUsecase) Approve(ctx context.Context, admin entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error) {
	return u.mutate(ctx, providerID, actionApprove, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		if p.Blacklisted {
			return domainerrors.ErrBlacklisted
		}
		if err := rec.ApproveAll(admin.UserID, now()); err != nil {
			return err
		}
		setAccount(p, entities.VerificationStatusApproved, "")
		return nil
	})
}

// Reject rejects the account without touching the stages
func (u *VerificationUsecase) Reject(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return u.mutate(ctx, providerID, actionReject, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		setAccount(p, entities.VerificationStatusRejected, reason)
		rec.UpdatedAt = now()
		return nil
	})
}

// Blacklist rejects the account and bars it from the marketplace
func (u *VerificationUsecase) Blacklist(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return u.mutate(ctx, providerID, actionBlacklist, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		setAccount(p, entities.VerificationStatusRejected, reason)
		p.Blacklisted = true
		rec.UpdatedAt = now()
		return nil
	})
}

// Unapprove sends every stage back to submitted for re-review
func (u *VerificationUsecase) Unapprove(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error) {
	return u.mutate(ctx, providerID, actionUnapprove, func(p *entities.Provider, rec *entities.VerificationRecord) error {
		rec.ResetToSubmitted(now())
		setAccount(p, entities.VerificationStatusPending, reason)
		return nil
	})
}

// ListForReview pages providers having a stage in status, submitted by default
func (u *VerificationUsecase) ListForReview(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]*entities.ReviewQueueItem, int64, error) {
	if status == "" {
		status = entities.StageStatusSubmitted
	}
	ids, total, err := u.verificationRepo.ListProviderIDsWithStageStatus(ctx, status, pagination)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*entities.ReviewQueueItem, 0, len(ids))
	for _, id := range ids {
		p, err := u.providerRepo.GetByID(ctx, id)
		if err != nil {
			return nil, 0, fmt.Errorf("load provider %s: %w", id, err)
		}
		view, err := u.view(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &entities.ReviewQueueItem{Provider: p, Verification: view})
	}
	return items, total, nil
}

func (u *VerificationUsecase) view(ctx context.Context, p *entities.Provider) (*entities.VerificationView, error) {
	rec, err := u.verificationRepo.GetByProviderID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load verification: %w", err)
	}
	return entities.NewVerificationView(rec, p), nil
}

// mutate loads the provider under lock and its record, applies fn, and writes
// both back in one transaction.
func (u *VerificationUsecase) mutate(ctx context.Context, providerID uuid.UUID, action string, fn func(*entities.Provider, *entities.VerificationRecord) error) (*entities.VerificationView, error) {
	var (
		p   *entities.Provider
		rec *entities.VerificationRecord
	)
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		if p, err = u.providerRepo.GetByIDForUpdate(ctx, providerID); err != nil {
			return err
		}
		if rec, err = u.verificationRepo.GetByProviderID(ctx, providerID); err != nil {
			return err
		}
		if err := fn(p, rec); err != nil {
			return err
		}
		if err := u.verificationRepo.Save(ctx, rec); err != nil {
			return err
		}
		return u.providerRepo.UpdateStatus(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	metrics.VerificationDecisions.WithLabelValues(action).Inc()

	view := entities.NewVerificationView(rec, p)
	u.publisher.Publish(ctx, entities.Event{
		Type:        entities.EventVerificationUpdated,
		RecipientID: p.UserID,
		Email:       p.Email,
		Subject:     "Your CareConnect verification was updated",
		Summary:     verificationSummary(action, view),
		Payload:     view,
		OccurredAt:  now(),
	})
	return view, nil
}

// setAccount sets the account status and keeps verified and available in step with it
func setAccount(p *entities.Provider, status entities.VerificationStatus, reason string) {
	p.VerificationStatus = status
	p.StatusReason = null.NewString(reason, reason != "")
	approved := status == entities.VerificationStatusApproved
	p.Verified = approved
	p.Available = approved
}

func verificationSummary(action string, view *entities.VerificationView) string {
	switch action {
	case actionSubmitStage:
		return "Your verification stage was submitted for review."
	case actionApproveStage, actionRejectStage:
		if view.IsFullyVerified {
			return "All verification stages are approved. You can now accept jobs."
		}
		return fmt.Sprintf("A verification stage was reviewed. Current stage: %d.", view.CurrentStage)
	case actionApprove:
		return "Your account has been approved."
	case actionReject:
		return "Your account verification was rejected."
	case actionBlacklist:
		return "Your account has been suspended."
	case actionUnapprove:
		return "Your verification has been reopened for review."
	}
	return "Your verification status changed."
}
