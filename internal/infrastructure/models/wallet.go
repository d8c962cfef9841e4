package models

import (
	"time"

	"github.com/google/uuid"
)

type WalletAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BalanceCents int64     `gorm:"not null"`
	Currency     string    `gorm:"type:varchar(3);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type WalletTransaction struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_wallet_operation"`
	Type              string    `gorm:"type:varchar(10);not null"`
	AmountCents       int64     `gorm:"not null"`
	BalanceAfterCents int64     `gorm:"not null"`
	Description       *string   `gorm:"type:varchar(255)"`
	Reference         *string   `gorm:"type:varchar(128)"`
	OperationID       string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_wallet_operation"`
	CheckoutRef       *string   `gorm:"type:varchar(128);uniqueIndex"`
	CreatedAt         time.Time `gorm:"index"`
}
