package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/models"
	"careconnect.backend/pkg/utils"
)

// ClientRepository implements client data operations
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client. A second row for the same user returns ErrAlreadyExists.
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) error {
	m := &models.Client{
		ID:        client.ID,
		UserID:    client.UserID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone.Ptr(),
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var m models.Client
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return clientToEntity(&m), nil
}

// GetByUserID gets a client by auth user ID
func (r *ClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Client, error) {
	var m models.Client
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return clientToEntity(&m), nil
}

// Update updates name and phone
func (r *ClientRepository) Update(ctx context.Context, client *entities.Client) error {
	result := GetDB(ctx, r.db).Model(&models.Client{}).Where("id = ?", client.ID).Updates(map[string]interface{}{
		"name":       client.Name,
		"phone":      client.Phone.Ptr(),
		"updated_at": time.Now().UTC(),
	})
	return affected(result)
}

// List lists clients with optional search on name or email
func (r *ClientRepository) List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.Client, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Client{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Client
	if err := query.Order("created_at DESC").Offset(pagination.CalculateOffset()).Limit(pagination.Limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Client, 0, len(ms))
	for i := range ms {
		items = append(items, clientToEntity(&ms[i]))
	}
	return items, total, nil
}

func clientToEntity(m *models.Client) *entities.Client {
	return &entities.Client{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     null.StringFromPtr(m.Phone),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// LocationRepository implements client location operations
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create creates a saved location
func (r *LocationRepository) Create(ctx context.Context, loc *entities.ClientLocation) error {
	m := &models.ClientLocation{
		ID:        loc.ID,
		ClientID:  loc.ClientID,
		Label:     loc.Label,
		Address:   loc.Address,
		Latitude:  loc.Latitude.Ptr(),
		Longitude: loc.Longitude.Ptr(),
		IsDefault: loc.IsDefault,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a location regardless of owner
func (r *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ClientLocation, error) {
	var m models.ClientLocation
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return locationToEntity(&m), nil
}

// ListByClient lists a client's locations, default first
func (r *LocationRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientLocation, error) {
	var ms []models.ClientLocation
	if err := GetDB(ctx, r.db).Where("client_id = ?", clientID).Order("is_default DESC, created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.ClientLocation, 0, len(ms))
	for i := range ms {
		items = append(items, locationToEntity(&ms[i]))
	}
	return items, nil
}

// CountByClient counts a client's locations
func (r *LocationRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.ClientLocation{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

// ClearDefault unsets the default flag on all of a client's locations
func (r *LocationRepository) ClearDefault(ctx context.Context, clientID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&models.ClientLocation{}).
		Where("client_id = ? AND is_default = ?", clientID, true).
		Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now().UTC()}).Error
}

// SetDefault marks one location as the default
func (r *LocationRepository) SetDefault(ctx context.Context, clientID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.ClientLocation{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(map[string]interface{}{"is_default": true, "updated_at": time.Now().UTC()})
	return affected(result)
}

// Delete deletes a client's location
func (r *LocationRepository) Delete(ctx context.Context, clientID, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Where("id = ? AND client_id = ?", id, clientID).Delete(&models.ClientLocation{}))
}

func locationToEntity(m *models.ClientLocation) *entities.ClientLocation {
	return &entities.ClientLocation{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Label:     m.Label,
		Address:   m.Address,
		Latitude:  null.Float64FromPtr(m.Latitude),
		Longitude: null.Float64FromPtr(m.Longitude),
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FamilyMemberRepository implements family member operations
type FamilyMemberRepository struct {
	db *gorm.DB
}

// NewFamilyMemberRepository creates a new family member repository
func NewFamilyMemberRepository(db *gorm.DB) *FamilyMemberRepository {
	return &FamilyMemberRepository{db: db}
}

// Create creates a family member
func (r *FamilyMemberRepository) Create(ctx context.Context, member *entities.FamilyMember) error {
	m := &models.FamilyMember{
		ID:           member.ID,
		ClientID:     member.ClientID,
		Name:         member.Name,
		Relationship: member.Relationship,
		DateOfBirth:  member.DateOfBirth.Ptr(),
		Notes:        member.Notes.Ptr(),
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a family member regardless of owner
func (r *FamilyMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FamilyMember, error) {
	var m models.FamilyMember
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return familyMemberToEntity(&m), nil
}

// ListByClient lists a client's family members
func (r *FamilyMemberRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.FamilyMember, error) {
	var ms []models.FamilyMember
	if err := GetDB(ctx, r.db).Where("client_id = ?", clientID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.FamilyMember, 0, len(ms))
	for i := range ms {
		items = append(items, familyMemberToEntity(&ms[i]))
	}
	return items, nil
}

// Update updates a family member scoped by its client
func (r *FamilyMemberRepository) Update(ctx context.Context, member *entities.FamilyMember) error {
	result := GetDB(ctx, r.db).Model(&models.FamilyMember{}).
		Where("id = ? AND client_id = ?", member.ID, member.ClientID).
		Updates(map[string]interface{}{
			"name":          member.Name,
			"relationship":  member.Relationship,
			"date_of_birth": member.DateOfBirth.Ptr(),
			"notes":         member.Notes.Ptr(),
			"updated_at":    time.Now().UTC(),
		})
	return affected(result)
}

// Delete deletes a client's family member
func (r *FamilyMemberRepository) Delete(ctx context.Context, clientID, id uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Where("id = ? AND client_id = ?", id, clientID).Delete(&models.FamilyMember{}))
}

func familyMemberToEntity(m *models.FamilyMember) *entities.FamilyMember {
	return &entities.FamilyMember{
		ID:           m.ID,
		ClientID:     m.ClientID,
		Name:         m.Name,
		Relationship: m.Relationship,
		DateOfBirth:  null.StringFromPtr(m.DateOfBirth),
		Notes:        null.StringFromPtr(m.Notes),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FavoriteRepository implements favorite provider operations
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add saves a favorite. The pair is unique; a repeat returns ErrAlreadyExists.
func (r *FavoriteRepository) Add(ctx context.Context, fav *entities.Favorite) error {
	m := &models.Favorite{
		ID:         fav.ID,
		ClientID:   fav.ClientID,
		ProviderID: fav.ProviderID,
		CreatedAt:  fav.CreatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// Get gets one favorite pair
func (r *FavoriteRepository) Get(ctx context.Context, clientID, providerID uuid.UUID) (*entities.Favorite, error) {
	var m models.Favorite
	if err := GetDB(ctx, r.db).Where("client_id = ? AND provider_id = ?", clientID, providerID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return &entities.Favorite{ID: m.ID, ClientID: m.ClientID, ProviderID: m.ProviderID, CreatedAt: m.CreatedAt}, nil
}

// ListByClient lists favorites with their providers loaded
func (r *FavoriteRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Favorite, error) {
	db := GetDB(ctx, r.db)

	var ms []models.Favorite
	if err := db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return []*entities.Favorite{}, nil
	}

	ids := make([]uuid.UUID, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ProviderID)
	}
	var providers []models.Provider
	if err := db.Where("id IN ?", ids).Find(&providers).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entities.Provider, len(providers))
	for i := range providers {
		byID[providers[i].ID] = providerToEntity(&providers[i])
	}

	items := make([]*entities.Favorite, 0, len(ms))
	for _, m := range ms {
		items = append(items, &entities.Favorite{
			ID:         m.ID,
			ClientID:   m.ClientID,
			ProviderID: m.ProviderID,
			Provider:   byID[m.ProviderID],
			CreatedAt:  m.CreatedAt,
		})
	}
	return items, nil
}

// Remove deletes a favorite pair
func (r *FavoriteRepository) Remove(ctx context.Context, clientID, providerID uuid.UUID) error {
	return affected(GetDB(ctx, r.db).Where("client_id = ? AND provider_id = ?", clientID, providerID).Delete(&models.Favorite{}))
}
