package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/utils"
)

// IdentityUsecase turns authenticated identities into client and provider rows,
// provisioning them on first access.
type IdentityUsecase struct {
	clientRepo       repositories.ClientRepository
	providerRepo     repositories.ProviderRepository
	verificationRepo repositories.VerificationRepository
	uow              repositories.UnitOfWork
}

// NewIdentityUsecase creates a new identity usecase
func NewIdentityUsecase(
	clientRepo repositories.ClientRepository,
	providerRepo repositories.ProviderRepository,
	verificationRepo repositories.VerificationRepository,
	uow repositories.UnitOfWork,
) *IdentityUsecase {
	return &IdentityUsecase{
		clientRepo:       clientRepo,
		providerRepo:     providerRepo,
		verificationRepo: verificationRepo,
		uow:              uow,
	}
}

// ResolveClient returns the caller's client row, creating it on first access.
// Losing a concurrent create returns the row that won.
func (u *IdentityUsecase) ResolveClient(ctx context.Context, identity entities.Identity) (*entities.Client, error) {
	if identity.Role != entities.UserRoleClient {
		return nil, domainerrors.Forbidden("client account required")
	}

	client, err := u.clientRepo.GetByUserID(ctx, identity.UserID)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load client: %w", err)
	}

	ts := now()
	client = &entities.Client{
		ID:        utils.GenerateUUIDv7(),
		UserID:    identity.UserID,
		Name:      identity.DisplayName(),
		Email:     identity.Email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := u.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return u.clientRepo.GetByUserID(ctx, identity.UserID)
		}
		return nil, fmt.Errorf("provision client: %w", err)
	}
	return client, nil
}

// ResolveProvider returns the caller's provider row. A provider-role user
// without one is provisioned the same way signup does it.
func (u *IdentityUsecase) ResolveProvider(ctx context.Context, identity entities.Identity) (*entities.Provider, error) {
	if identity.Role != entities.UserRoleProvider {
		return nil, domainerrors.Forbidden("provider account required")
	}

	provider, err := u.providerRepo.GetByUserID(ctx, identity.UserID)
	if err == nil {
		return provider, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, fmt.Errorf("load provider: %w", err)
	}

	provider = newPendingProvider(identity.UserID, identity.DisplayName(), identity.Email)
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		return createProviderWithRecord(ctx, u.providerRepo, u.verificationRepo, provider)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return u.providerRepo.GetByUserID(ctx, identity.UserID)
		}
		return nil, fmt.Errorf("provision provider: %w", err)
	}
	return provider, nil
}

func newPendingProvider(userID uuid.UUID, name, email string) *entities.Provider {
	ts := now()
	return &entities.Provider{
		ID:                 utils.GenerateUUIDv7(),
		UserID:             userID,
		Name:               name,
		Email:              email,
		Skills:             []string{},
		VerificationStatus: entities.VerificationStatusPending,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

// createProviderWithRecord must run inside a unit of work
func createProviderWithRecord(ctx context.Context, providers repositories.ProviderRepository, verifications repositories.VerificationRepository, p *entities.Provider) error {
	if err := providers.Create(ctx, p); err != nil {
		return err
	}
	return verifications.Create(ctx, entities.NewVerificationRecord(utils.GenerateUUIDv7(), p.ID, p.CreatedAt))
}
