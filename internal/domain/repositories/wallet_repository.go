package repositories

import (
	"context"

	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

// WalletRepository defines wallet and ledger operations
type WalletRepository interface {
	GetOrCreate(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error)
	// AdjustBalance adds delta to the balance. A negative delta that would
	// take the balance below zero returns ErrInsufficientFunds.
	AdjustBalance(ctx context.Context, walletID uuid.UUID, deltaCents int64) (*entities.WalletAccount, error)
	CreateTransaction(ctx context.Context, tx *entities.WalletTransaction) error
	GetTransactionByOperationID(ctx context.Context, walletID uuid.UUID, operationID string) (*entities.WalletTransaction, error)
	GetTransactionByCheckoutRef(ctx context.Context, ref string) (*entities.WalletTransaction, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error)
	Totals(ctx context.Context) (creditCents, debitCents int64, err error)
}
