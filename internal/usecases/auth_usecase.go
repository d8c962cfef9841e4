package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/volatiletech/null/v8"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/pkg/crypto"
	"careconnect.backend/pkg/jwt"
	"careconnect.backend/pkg/utils"
)

var errAlreadyRegistered = domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeAlreadyRegistered, "email is already registered", domainerrors.ErrAlreadyExists)

// AuthUsecase handles signup, login and token resolution
type AuthUsecase struct {
	userRepo         repositories.UserRepository
	clientRepo       repositories.ClientRepository
	providerRepo     repositories.ProviderRepository
	verificationRepo repositories.VerificationRepository
	uow              repositories.UnitOfWork
	jwtService       *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	providerRepo repositories.ProviderRepository,
	verificationRepo repositories.VerificationRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:         userRepo,
		clientRepo:       clientRepo,
		providerRepo:     providerRepo,
		verificationRepo: verificationRepo,
		uow:              uow,
		jwtService:       jwtService,
	}
}

// SignupClient registers a client user and its client row
func (u *AuthUsecase) SignupClient(ctx context.Context, input *entities.SignupClientInput) (*entities.AuthResponse, error) {
	email := entities.NormalizeEmail(input.Email)
	if err := u.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	user, err := u.newUser(email, input.Name, input.Password, entities.UserRoleClient)
	if err != nil {
		return nil, err
	}
	client := &entities.Client{
		ID:        utils.GenerateUUIDv7(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     email,
		Phone:     null.NewString(input.Phone, input.Phone != ""),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return u.clientRepo.Create(ctx, client)
	})
	if err != nil {
		return nil, signupError(err)
	}

	resp, err := u.issue(user)
	if err != nil {
		return nil, err
	}
	resp.Client = client
	return resp, nil
}

// SignupProvider registers a provider user, a pending provider and its
// verification record in one transaction.
func (u *AuthUsecase) SignupProvider(ctx context.Context, input *entities.SignupProviderInput) (*entities.AuthResponse, error) {
	email := entities.NormalizeEmail(input.Email)
	if err := u.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	user, err := u.newUser(email, input.Name, input.Password, entities.UserRoleProvider)
	if err != nil {
		return nil, err
	}
	provider := newPendingProvider(user.ID, user.Name, email)
	provider.Phone = null.NewString(input.Phone, input.Phone != "")
	provider.Specialty = input.Specialty
	if input.Skills != nil {
		provider.Skills = normalizeSkills(input.Skills)
	}
	provider.HourlyRate = entities.RoundCents(input.HourlyRate)
	provider.ExperienceYears = input.ExperienceYears

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return createProviderWithRecord(ctx, u.providerRepo, u.verificationRepo, provider)
	})
	if err != nil {
		return nil, signupError(err)
	}

	resp, err := u.issue(user)
	if err != nil {
		return nil, err
	}
	resp.Provider = provider
	return resp, nil
}

// Login verifies credentials and issues a token pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, entities.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return u.issue(user)
}

// Refresh exchanges a refresh token for a new pair
func (u *AuthUsecase) Refresh(ctx context.Context, input *entities.RefreshInput) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	return u.issue(user)
}

// Authenticate resolves an access token to the identity on record. A token
// whose user no longer exists is unauthorized.
func (u *AuthUsecase) Authenticate(ctx context.Context, token string) (*entities.Identity, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, tokenError(err)
	}
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	return &entities.Identity{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// CreateAdmin creates an admin user; used by the create-admin command
func (u *AuthUsecase) CreateAdmin(ctx context.Context, email, name, password string) (*entities.User, error) {
	email = entities.NormalizeEmail(email)
	if err := u.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	user, err := u.newUser(email, name, password, entities.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, signupError(err)
	}
	return user, nil
}

func (u *AuthUsecase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return errAlreadyRegistered
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}

func (u *AuthUsecase) newUser(email, name, password string, role entities.UserRole) (*entities.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = entities.NameFromEmail(email)
	}
	ts := now()
	return &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}, nil
}

func (u *AuthUsecase) issue(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		User:         user,
	}, nil
}

func signupError(err error) error {
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		return errAlreadyRegistered
	}
	return err
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrExpiredToken) {
		return domainerrors.ErrTokenExpired
	}
	return domainerrors.ErrUnauthorized
}
