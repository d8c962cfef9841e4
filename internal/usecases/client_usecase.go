package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/utils"
)

// ClientUsecase manages a client's profile and saved resources
type ClientUsecase struct {
	clients      ClientResolver
	clientRepo   repositories.ClientRepository
	locationRepo repositories.LocationRepository
	familyRepo   repositories.FamilyMemberRepository
	favoriteRepo repositories.FavoriteRepository
	providerRepo repositories.ProviderRepository
	uow          repositories.UnitOfWork
}

// NewClientUsecase creates a new client usecase
func NewClientUsecase(
	clients ClientResolver,
	clientRepo repositories.ClientRepository,
	locationRepo repositories.LocationRepository,
	familyRepo repositories.FamilyMemberRepository,
	favoriteRepo repositories.FavoriteRepository,
	providerRepo repositories.ProviderRepository,
	uow repositories.UnitOfWork,
) *ClientUsecase {
	return &ClientUsecase{
		clients:      clients,
		clientRepo:   clientRepo,
		locationRepo: locationRepo,
		familyRepo:   familyRepo,
		favoriteRepo: favoriteRepo,
		providerRepo: providerRepo,
		uow:          uow,
	}
}

// GetProfile returns the caller's client profile
func (u *ClientUsecase) GetProfile(ctx context.Context, identity entities.Identity) (*entities.Client, error) {
	return u.clients.ResolveClient(ctx, identity)
}

// UpdateProfile changes name and phone
func (u *ClientUsecase) UpdateProfile(ctx context.Context, identity entities.Identity, input *entities.UpdateClientProfileInput) (*entities.Client, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		client.Name = name
	}
	if input.Phone != nil {
		client.Phone = null.NewString(*input.Phone, *input.Phone != "")
	}
	client.UpdatedAt = now()
	if err := u.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// ListLocations lists saved locations, default first
func (u *ClientUsecase) ListLocations(ctx context.Context, identity entities.Identity) ([]*entities.ClientLocation, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.locationRepo.ListByClient(ctx, client.ID)
}

// AddLocation saves a location. The first location, or one flagged default,
// becomes the only default.
func (u *ClientUsecase) AddLocation(ctx context.Context, identity entities.Identity, input *entities.AddLocationInput) (*entities.ClientLocation, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}

	ts := now()
	loc := &entities.ClientLocation{
		ID:        utils.GenerateUUIDv7(),
		ClientID:  client.ID,
		Label:     input.Label,
		Address:   input.Address,
		Latitude:  null.Float64FromPtr(input.Latitude),
		Longitude: null.Float64FromPtr(input.Longitude),
		IsDefault: input.IsDefault,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		count, err := u.locationRepo.CountByClient(ctx, client.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			loc.IsDefault = true
		}
		if loc.IsDefault {
			if err := u.locationRepo.ClearDefault(ctx, client.ID); err != nil {
				return err
			}
		}
		return u.locationRepo.Create(ctx, loc)
	})
	if err != nil {
		return nil, fmt.Errorf("add location: %w", err)
	}
	return loc, nil
}

// SetDefaultLocation moves the default flag to one location in one transaction
func (u *ClientUsecase) SetDefaultLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) (*entities.ClientLocation, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	loc, err := u.ownedLocation(ctx, client.ID, locationID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.locationRepo.ClearDefault(ctx, client.ID); err != nil {
			return err
		}
		return u.locationRepo.SetDefault(ctx, client.ID, locationID)
	})
	if err != nil {
		return nil, fmt.Errorf("set default location: %w", err)
	}
	loc.IsDefault = true
	return loc, nil
}

// DeleteLocation removes a saved location
func (u *ClientUsecase) DeleteLocation(ctx context.Context, identity entities.Identity, locationID uuid.UUID) error {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return err
	}
	if _, err := u.ownedLocation(ctx, client.ID, locationID); err != nil {
		return err
	}
	return u.locationRepo.Delete(ctx, client.ID, locationID)
}

// ListFamilyMembers lists the people a client books care for
func (u *ClientUsecase) ListFamilyMembers(ctx context.Context, identity entities.Identity) ([]*entities.FamilyMember, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.familyRepo.ListByClient(ctx, client.ID)
}

// AddFamilyMember adds a family member
func (u *ClientUsecase) AddFamilyMember(ctx context.Context, identity entities.Identity, input *entities.FamilyMemberInput) (*entities.FamilyMember, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	ts := now()
	member := &entities.FamilyMember{
		ID:        utils.GenerateUUIDv7(),
		ClientID:  client.ID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	applyFamilyInput(member, input)
	if err := u.familyRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateFamilyMember replaces a family member's details
func (u *ClientUsecase) UpdateFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID, input *entities.FamilyMemberInput) (*entities.FamilyMember, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	member, err := u.ownedFamilyMember(ctx, client.ID, memberID)
	if err != nil {
		return nil, err
	}
	applyFamilyInput(member, input)
	member.UpdatedAt = now()
	if err := u.familyRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteFamilyMember removes a family member
func (u *ClientUsecase) DeleteFamilyMember(ctx context.Context, identity entities.Identity, memberID uuid.UUID) error {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return err
	}
	if _, err := u.ownedFamilyMember(ctx, client.ID, memberID); err != nil {
		return err
	}
	return u.familyRepo.Delete(ctx, client.ID, memberID)
}

// ListFavorites lists saved providers
func (u *ClientUsecase) ListFavorites(ctx context.Context, identity entities.Identity) ([]*entities.Favorite, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.favoriteRepo.ListByClient(ctx, client.ID)
}

// AddFavorite saves a provider. Saving the same provider again returns the existing favorite.
func (u *ClientUsecase) AddFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.Favorite, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	provider, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	fav := &entities.Favorite{
		ID:         utils.GenerateUUIDv7(),
		ClientID:   client.ID,
		ProviderID: provider.ID,
		CreatedAt:  now(),
	}
	if err := u.favoriteRepo.Add(ctx, fav); err != nil {
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, err
		}
		if fav, err = u.favoriteRepo.Get(ctx, client.ID, provider.ID); err != nil {
			return nil, err
		}
	}
	fav.Provider = provider
	return fav, nil
}

// RemoveFavorite removes a saved provider
func (u *ClientUsecase) RemoveFavorite(ctx context.Context, identity entities.Identity, providerID uuid.UUID) error {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return err
	}
	return u.favoriteRepo.Remove(ctx, client.ID, providerID)
}

func (u *ClientUsecase) ownedLocation(ctx context.Context, clientID, locationID uuid.UUID) (*entities.ClientLocation, error) {
	loc, err := u.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc.ClientID != clientID {
		return nil, domainerrors.ErrForbidden
	}
	return loc, nil
}

func (u *ClientUsecase) ownedFamilyMember(ctx context.Context, clientID, memberID uuid.UUID) (*entities.FamilyMember, error) {
	member, err := u.familyRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.ClientID != clientID {
		return nil, domainerrors.ErrForbidden
	}
	return member, nil
}

func applyFamilyInput(member *entities.FamilyMember, input *entities.FamilyMemberInput) {
	member.Name = strings.TrimSpace(input.Name)
	member.Relationship = input.Relationship
	member.DateOfBirth = null.NewString(input.DateOfBirth, input.DateOfBirth != "")
	member.Notes = null.NewString(input.Notes, input.Notes != "")
}
