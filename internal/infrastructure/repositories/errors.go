package repositories

import (
	"errors"

	"gorm.io/gorm"

	domainerrors "careconnect.backend/internal/domain/errors"
)

// mapError translates gorm errors into domain sentinels
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrAlreadyExists
	}
	return err
}

// affected returns ErrNotFound when a write matched no rows
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
