package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/utils"
)

// ProviderUsecase handles provider profiles and the public directory
type ProviderUsecase struct {
	providers        ProviderResolver
	providerRepo     repositories.ProviderRepository
	verificationRepo repositories.VerificationRepository
	bookingRepo      repositories.BookingRepository
}

// NewProviderUsecase creates a new provider usecase
func NewProviderUsecase(
	providers ProviderResolver,
	providerRepo repositories.ProviderRepository,
	verificationRepo repositories.VerificationRepository,
	bookingRepo repositories.BookingRepository,
) *ProviderUsecase {
	return &ProviderUsecase{
		providers:        providers,
		providerRepo:     providerRepo,
		verificationRepo: verificationRepo,
		bookingRepo:      bookingRepo,
	}
}

// GetProfile returns the caller's provider profile
func (u *ProviderUsecase) GetProfile(ctx context.Context, identity entities.Identity) (*entities.Provider, error) {
	return u.providers.ResolveProvider(ctx, identity)
}

// UpdateProfile changes the descriptive fields of a provider. Moderation
// fields are untouched.
func (u *ProviderUsecase) UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateProviderProfileInput) (*entities.Provider, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		p.Name = name
	}
	if input.Phone != nil {
		p.Phone = null.NewString(*input.Phone, *input.Phone != "")
	}
	if input.Specialty != nil {
		p.Specialty = strings.TrimSpace(*input.Specialty)
	}
	if input.Skills != nil {
		p.Skills = normalizeSkills(input.Skills)
	}
	if input.HourlyRate != nil {
		p.HourlyRate = entities.RoundCents(*input.HourlyRate)
	}
	if input.ExperienceYears != nil {
		p.ExperienceYears = *input.ExperienceYears
	}
	if input.Bio != nil {
		p.Bio = null.NewString(*input.Bio, *input.Bio != "")
	}
	p.UpdatedAt = now()

	if err := u.providerRepo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetAvailability toggles whether the provider takes new jobs. Going
// available requires full verification.
func (u *ProviderUsecase) SetAvailability(ctx context.Context, identity entities.Identity, available bool) (*entities.Provider, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}

	if available {
		if p.Blacklisted {
			return nil, domainerrors.ErrBlacklisted
		}
		rec, err := u.verificationRepo.GetByProviderID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("load verification: %w", err)
		}
		if !entities.IsFullyVerified(rec, p.VerificationStatus) {
			return nil, domainerrors.ErrNotVerified
		}
	}

	if err := u.providerRepo.SetAvailable(ctx, p.ID, available); err != nil {
		return nil, err
	}
	p.Available = available
	return p, nil
}

// ListPublic lists providers clients can book
func (u *ProviderUsecase) ListPublic(ctx context.Context, specialty string, pagination utils.PaginationParams) ([]*entities.PublicProvider, int64, error) {
	filter := entities.ProviderFilter{
		Specialty:    strings.TrimSpace(specialty),
		OnlyBookable: true,
	}
	providers, total, err := u.providerRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}
	items := make([]*entities.PublicProvider, 0, len(providers))
	for _, p := range providers {
		items = append(items, p.Public())
	}
	return items, total, nil
}

// GetPublic returns the public view of one provider
func (u *ProviderUsecase) GetPublic(ctx context.Context, id uuid.UUID) (*entities.PublicProvider, error) {
	p, err := u.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Blacklisted {
		return nil, domainerrors.NotFound("provider not found")
	}
	return p.Public(), nil
}

// Earnings sums the caller's completed bookings
func (u *ProviderUsecase) Earnings(ctx context.Context, identity entities.Identity) (*entities.ProviderEarnings, error) {
	p, err := u.providers.ResolveProvider(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.bookingRepo.ProviderEarnings(ctx, p.ID)
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
