package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/internal/infrastructure/metrics"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/utils"
)

const defaultDurationHours = 1

// BookingUsecase runs the booking lifecycle
type BookingUsecase struct {
	clients           ClientResolver
	providers         ProviderResolver
	bookingRepo       repositories.BookingRepository
	clientRepo        repositories.ClientRepository
	providerRepo      repositories.ProviderRepository
	verificationRepo  repositories.VerificationRepository
	locationRepo      repositories.LocationRepository
	familyRepo        repositories.FamilyMemberRepository
	serviceRepo       repositories.ServiceRepository
	uow               repositories.UnitOfWork
	ledger            *ledger
	publisher         EventPublisher
	defaultFeePercent float64
}

// BookingDeps groups the collaborators of BookingUsecase
type BookingDeps struct {
	Clients           ClientResolver
	Providers         ProviderResolver
	BookingRepo       repositories.BookingRepository
	ClientRepo        repositories.ClientRepository
	ProviderRepo      repositories.ProviderRepository
	VerificationRepo  repositories.VerificationRepository
	LocationRepo      repositories.LocationRepository
	FamilyRepo        repositories.FamilyMemberRepository
	ServiceRepo       repositories.ServiceRepository
	WalletRepo        repositories.WalletRepository
	UnitOfWork        repositories.UnitOfWork
	Publisher         EventPublisher
	DefaultFeePercent float64
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(deps BookingDeps) *BookingUsecase {
	return &BookingUsecase{
		clients:           deps.Clients,
		providers:         deps.Providers,
		bookingRepo:       deps.BookingRepo,
		clientRepo:        deps.ClientRepo,
		providerRepo:      deps.ProviderRepo,
		verificationRepo:  deps.VerificationRepo,
		locationRepo:      deps.LocationRepo,
		familyRepo:        deps.FamilyRepo,
		serviceRepo:       deps.ServiceRepo,
		uow:               deps.UnitOfWork,
		ledger:            &ledger{walletRepo: deps.WalletRepo, uow: deps.UnitOfWork},
		publisher:         publisherOrNop(deps.Publisher),
		defaultFeePercent: deps.DefaultFeePercent,
	}
}

// Create opens a pending care request for the caller
func (u *BookingUsecase) Create(ctx context.Context, identity entities.Identity, input *entities.CreateBookingInput) (*entities.Booking, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}

	if input.FamilyMemberID != nil {
		member, err := u.familyRepo.GetByID(ctx, *input.FamilyMemberID)
		if err != nil {
			return nil, fmt.Errorf("family member: %w", err)
		}
		if member.ClientID != client.ID {
			return nil, domainerrors.ErrForbidden
		}
	}
	if input.LocationID != nil {
		loc, err := u.locationRepo.GetByID(ctx, *input.LocationID)
		if err != nil {
			return nil, fmt.Errorf("location: %w", err)
		}
		if loc.ClientID != client.ID {
			return nil, domainerrors.ErrForbidden
		}
	}

	var provider *entities.Provider
	if input.ProviderID != nil {
		if provider, err = u.providerRepo.GetByID(ctx, *input.ProviderID); err != nil {
			return nil, fmt.Errorf("provider: %w", err)
		}
		if provider.Blacklisted {
			return nil, domainerrors.ErrBlacklisted
		}
	}

	hours := input.DurationHours
	if hours <= 0 {
		hours = defaultDurationHours
	}

	var estimate float64
	switch {
	case input.EstimatedCost != nil:
		estimate = entities.RoundCents(*input.EstimatedCost)
	case input.ServiceID != nil:
		svc, err := u.serviceRepo.GetByID(ctx, *input.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		if !svc.Active {
			return nil, domainerrors.BadRequest("service is not available")
		}
		estimate = svc.QuoteFor(hours).EstimatedCost
	case provider != nil && provider.HourlyRate > 0:
		estimate = entities.RoundCents(provider.HourlyRate * hours)
	default:
		return nil, domainerrors.BadRequest("estimatedCost is required when no service is given")
	}

	ts := now()
	booking := &entities.Booking{
		ID:             utils.GenerateUUIDv7(),
		ClientID:       client.ID,
		ProviderID:     input.ProviderID,
		ServiceID:      input.ServiceID,
		ServiceType:    strings.TrimSpace(input.ServiceType),
		FamilyMemberID: input.FamilyMemberID,
		LocationID:     input.LocationID,
		ScheduledDate:  input.ScheduledDate,
		ScheduledTime:  input.ScheduledTime,
		DurationHours:  hours,
		EstimatedCost:  estimate,
		Status:         entities.BookingStatusPending,
		PaymentStatus:  entities.PaymentStatusUnpaid,
		Notes:          null.NewString(input.Notes, input.Notes != ""),
		Version:        1,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	metrics.BookingTransitions.WithLabelValues(string(entities.BookingStatusPending)).Inc()

	if provider != nil {
		u.notify(ctx, booking, provider.UserID, provider.Email, "You have a new care request.")
	}
	return booking, nil
}

// ListClient pages the caller's bookings
func (u *BookingUsecase) ListClient(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, 0, err
	}
	return u.bookingRepo.List(ctx, entities.BookingFilter{ClientID: &client.ID, Status: status}, pagination)
}

// ListProvider pages the jobs assigned to the caller
func (u *BookingUsecase) ListProvider(ctx context.Context, identity entities.Identity, status entities.BookingStatus, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, 0, err
	}
	return u.bookingRepo.List(ctx, entities.BookingFilter{ProviderID: &p.ID, Status: status}, pagination)
}

// ListOpenJobs pages pending requests the caller may accept
func (u *BookingUsecase) ListOpenJobs(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.Booking, int64, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, 0, err
	}
	return u.bookingRepo.ListOpen(ctx, p.ID, pagination)
}

// Accept assigns a pending booking to the caller. Only one provider can win.
func (u *BookingUsecase) Accept(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.Booking, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := u.ensureBookable(ctx, p); err != nil {
		return nil, err
	}

	b, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != nil && *b.ProviderID != p.ID {
		if b.Status == entities.BookingStatusPending {
			return nil, domainerrors.Forbidden("booking was requested for another provider")
		}
		return nil, domainerrors.Conflict("booking was already accepted by another provider")
	}
	if err := entities.CheckTransition(entities.ActorProvider, b.Status, entities.BookingStatusAccepted); err != nil {
		return nil, err
	}

	err = u.bookingRepo.ApplyStatus(ctx, entities.StatusUpdate{
		BookingID:     b.ID,
		From:          entities.BookingStatusPending,
		To:            entities.BookingStatusAccepted,
		ProviderID:    &p.ID,
		ExpectVersion: b.Version,
		At:            now(),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("booking was already accepted by another provider")
		}
		return nil, err
	}
	return u.afterTransition(ctx, b.ID, b.ClientID, "Your care request was accepted.")
}

// UpdateStatus moves an assigned job along. Completing a job fixes the final
// cost and splits it between platform fee and provider payout.
func (u *BookingUsecase) UpdateStatus(ctx context.Context, identity entities.Identity, input *entities.UpdateJobStatusInput) (*entities.Booking, error) {
	if input.Status == entities.BookingStatusAccepted {
		return u.Accept(ctx, identity, input.BookingID)
	}

	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}
	b, err := u.bookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID == nil || *b.ProviderID != p.ID {
		return nil, domainerrors.Forbidden("job is not assigned to you")
	}
	if err := entities.CheckTransition(entities.ActorProvider, b.Status, input.Status); err != nil {
		return nil, err
	}

	update := entities.StatusUpdate{
		BookingID:     b.ID,
		From:          b.Status,
		To:            input.Status,
		ProviderID:    &p.ID,
		ExpectVersion: b.Version,
		At:            now(),
	}
	summary := "Your booking is now " + string(input.Status) + "."
	switch input.Status {
	case entities.BookingStatusCompleted:
		total := b.EstimatedCost
		if input.FinalCost != nil {
			total = *input.FinalCost
		}
		feePercent, err := u.feePercent(ctx, b)
		if err != nil {
			return nil, err
		}
		payout := entities.CalculatePayout(total, feePercent)
		update.FinalCost = null.Float64From(payout.Total)
		update.PlatformFee = null.Float64From(payout.PlatformFee)
		update.ProviderPayout = null.Float64From(payout.ProviderPayout)
		summary = fmt.Sprintf("Your booking is complete. Total due: %.2f.", payout.Total)
	case entities.BookingStatusCancelled:
		update.CancelReason = null.NewString(input.Reason, input.Reason != "")
		summary = "Your provider cancelled the booking."
	}

	if err := u.bookingRepo.ApplyStatus(ctx, update); err != nil {
		return nil, err
	}
	return u.afterTransition(ctx, b.ID, b.ClientID, summary)
}

// Cancel withdraws a pending request owned by the caller
func (u *BookingUsecase) Cancel(ctx context.Context, identity entities.Identity, input *entities.CancelBookingInput) (*entities.Booking, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	b, err := u.ownedBooking(ctx, client.ID, input.BookingID)
	if err != nil {
		return nil, err
	}
	if err := entities.CheckTransition(entities.ActorClient, b.Status, entities.BookingStatusCancelled); err != nil {
		return nil, err
	}

	err = u.bookingRepo.ApplyStatus(ctx, entities.StatusUpdate{
		BookingID:     b.ID,
		From:          b.Status,
		To:            entities.BookingStatusCancelled,
		ExpectVersion: b.Version,
		CancelReason:  null.NewString(input.Reason, input.Reason != ""),
		At:            now(),
	})
	if err != nil {
		return nil, err
	}

	updated, err := u.bookingRepo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	metrics.BookingTransitions.WithLabelValues(string(updated.Status)).Inc()
	if updated.ProviderID != nil {
		if p, err := u.providerRepo.GetByID(ctx, *updated.ProviderID); err == nil {
			u.notify(ctx, updated, p.UserID, p.Email, "A care request was cancelled by the client.")
		}
	}
	return updated, nil
}

// Rate stores the caller's one-time rating of a completed booking and folds
// it into the provider's average.
func (u *BookingUsecase) Rate(ctx context.Context, identity entities.Identity, input *entities.RateBookingInput) (*entities.Booking, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	b, err := u.bookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		err := u.bookingRepo.ApplyRating(ctx, entities.RatingUpdate{
			BookingID:     b.ID,
			ClientID:      client.ID,
			Rating:        input.Rating,
			Review:        null.NewString(input.Review, input.Review != ""),
			ExpectVersion: b.Version,
			At:            now(),
		})
		if err != nil {
			return err
		}
		if b.ProviderID == nil {
			return nil
		}
		return u.providerRepo.AddRating(ctx, *b.ProviderID, input.Rating)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, u.classifyRatingFailure(ctx, client.ID, b.ID)
		}
		return nil, err
	}
	return u.bookingRepo.GetByID(ctx, b.ID)
}

// classifyRatingFailure explains why the guarded rating update matched nothing
func (u *BookingUsecase) classifyRatingFailure(ctx context.Context, clientID, bookingID uuid.UUID) error {
	b, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	switch {
	case b.ClientID != clientID:
		return domainerrors.ErrForbidden
	case b.Rating.Valid:
		return domainerrors.ErrAlreadyRated
	case b.Status != entities.BookingStatusCompleted:
		return fmt.Errorf("booking is %s: %w", b.Status, domainerrors.ErrInvalidTransition)
	}
	return domainerrors.Conflict("booking changed while rating, try again")
}

// PayWithWallet settles a booking from the caller's wallet. Marking the
// booking paid and the debit commit together.
func (u *BookingUsecase) PayWithWallet(ctx context.Context, identity entities.Identity, bookingID uuid.UUID) (*entities.BookingPayment, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	b, err := u.ownedBooking(ctx, client.ID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == entities.BookingStatusCancelled {
		return nil, fmt.Errorf("booking is cancelled: %w", domainerrors.ErrInvalidTransition)
	}
	if b.PaymentStatus == entities.PaymentStatusPaid {
		return nil, domainerrors.ErrAlreadyPaid
	}

	amount := entities.ToCents(b.AmountDue())
	if amount <= 0 {
		return nil, domainerrors.BadRequest("booking has no amount due")
	}
	var result *entities.WalletOperationResult
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.bookingRepo.MarkPaid(ctx, b.ID, now()); err != nil {
			return err
		}
		var err error
		result, err = u.ledger.apply(ctx, entities.WalletOperation{
			ClientID:    client.ID,
			Type:        entities.TransactionTypeDebit,
			AmountCents: amount,
			Description: "Payment for " + b.ServiceType,
			Reference:   b.ID.String(),
			OperationID: "booking-pay:" + b.ID.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	updated, err := u.bookingRepo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &entities.BookingPayment{Booking: updated, Transaction: result.Transaction}, nil
}

func (u *BookingUsecase) ensureBookable(ctx context.Context, p *entities.Provider) error {
	if p.Blacklisted {
		return domainerrors.ErrBlacklisted
	}
	rec, err := u.verificationRepo.GetByProviderID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("load verification: %w", err)
	}
	if !entities.IsFullyVerified(rec, p.VerificationStatus) {
		return domainerrors.ErrNotVerified
	}
	return nil
}

func (u *BookingUsecase) ownedBooking(ctx context.Context, clientID, bookingID uuid.UUID) (*entities.Booking, error) {
	b, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, domainerrors.ErrForbidden
	}
	return b, nil
}

// feePercent is the booked service's fee, or the configured default when the
// booking has no service or the service is gone.
func (u *BookingUsecase) feePercent(ctx context.Context, b *entities.Booking) (float64, error) {
	if b.ServiceID == nil {
		return u.defaultFeePercent, nil
	}
	svc, err := u.serviceRepo.GetByID(ctx, *b.ServiceID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return u.defaultFeePercent, nil
	}
	if err != nil {
		return 0, err
	}
	return svc.PlatformFeePercent, nil
}

// afterTransition reloads a booking, counts the transition and tells the client
func (u *BookingUsecase) afterTransition(ctx context.Context, bookingID, clientID uuid.UUID, summary string) (*entities.Booking, error) {
	b, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	metrics.BookingTransitions.WithLabelValues(string(b.Status)).Inc()

	client, err := u.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		logger.Warn(ctx, "Booking notification skipped", zap.String("booking_id", b.ID.String()), zap.Error(err))
		return b, nil
	}
	u.notify(ctx, b, client.UserID, client.Email, summary)
	return b, nil
}

func (u *BookingUsecase) notify(ctx context.Context, b *entities.Booking, recipient uuid.UUID, email, summary string) {
	u.publisher.Publish(ctx, entities.Event{
		Type:        entities.EventBookingUpdated,
		RecipientID: recipient,
		Email:       email,
		Subject:     "CareConnect booking update",
		Summary:     summary,
		Payload:     b,
		OccurredAt:  now(),
	})
}
