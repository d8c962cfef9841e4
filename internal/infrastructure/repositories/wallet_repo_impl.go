package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/infrastructure/models"
	"careconnect.backend/pkg/utils"
)

// WalletRepository implements wallet and ledger operations
type WalletRepository struct {
	db       *gorm.DB
	currency string
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB, currency string) *WalletRepository {
	if currency == "" {
		currency = "INR"
	}
	return &WalletRepository{db: db, currency: currency}
}

// GetOrCreate returns the client's wallet, creating an empty one on first use
func (r *WalletRepository) GetOrCreate(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error) {
	wallet, err := r.GetByClientID(ctx, clientID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	m := &models.WalletAccount{
		ID:        utils.GenerateUUIDv7(),
		ClientID:  clientID,
		Currency:  r.currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(mapError(err), domainerrors.ErrAlreadyExists) {
			return r.GetByClientID(ctx, clientID)
		}
		return nil, err
	}
	return walletToEntity(m), nil
}

// GetByClientID gets a client's wallet
func (r *WalletRepository) GetByClientID(ctx context.Context, clientID uuid.UUID) (*entities.WalletAccount, error) {
	var m models.WalletAccount
	if err := GetDB(ctx, r.db).Where("client_id = ?", clientID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return walletToEntity(&m), nil
}

// AdjustBalance applies delta with a conditional update so the balance never goes negative
func (r *WalletRepository) AdjustBalance(ctx context.Context, walletID uuid.UUID, deltaCents int64) (*entities.WalletAccount, error) {
	db := GetDB(ctx, r.db)

	query := db.Model(&models.WalletAccount{}).Where("id = ?", walletID)
	if deltaCents < 0 {
		query = query.Where("balance_cents >= ?", -deltaCents)
	}
	result := query.Updates(map[string]interface{}{
		"balance_cents": gorm.Expr("balance_cents + ?", deltaCents),
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, result.Error
	}

	var m models.WalletAccount
	if err := db.Where("id = ?", walletID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrInsufficientFunds
	}
	return walletToEntity(&m), nil
}

// CreateTransaction appends a ledger row. A repeated operation id returns ErrAlreadyExists.
func (r *WalletRepository) CreateTransaction(ctx context.Context, tx *entities.WalletTransaction) error {
	m := &models.WalletTransaction{
		ID:                tx.ID,
		WalletID:          tx.WalletID,
		Type:              string(tx.Type),
		AmountCents:       tx.AmountCents,
		BalanceAfterCents: tx.BalanceAfterCents,
		Description:       tx.Description.Ptr(),
		Reference:         tx.Reference.Ptr(),
		OperationID:       tx.OperationID,
		CheckoutRef:       tx.CheckoutRef.Ptr(),
		CreatedAt:         tx.CreatedAt,
	}
	return mapError(GetDB(ctx, r.db).Create(m).Error)
}

// GetTransactionByOperationID finds the ledger row written by an operation
func (r *WalletRepository) GetTransactionByOperationID(ctx context.Context, walletID uuid.UUID, operationID string) (*entities.WalletTransaction, error) {
	var m models.WalletTransaction
	if err := GetDB(ctx, r.db).Where("wallet_id = ? AND operation_id = ?", walletID, operationID).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return walletTxToEntity(&m), nil
}

// GetTransactionByCheckoutRef finds the ledger row that credited a checkout payment, in any wallet
func (r *WalletRepository) GetTransactionByCheckoutRef(ctx context.Context, ref string) (*entities.WalletTransaction, error) {
	var m models.WalletTransaction
	if err := GetDB(ctx, r.db).Where("checkout_ref = ?", ref).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return walletTxToEntity(&m), nil
}

// ListTransactions pages a wallet's ledger, newest first
func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.WalletTransaction{}).Where("wallet_id = ?", walletID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WalletTransaction
	if err := query.Order("created_at DESC, id DESC").Offset(pagination.CalculateOffset()).Limit(pagination.Limit).Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	items := make([]*entities.WalletTransaction, 0, len(ms))
	for i := range ms {
		items = append(items, walletTxToEntity(&ms[i]))
	}
	return items, total, nil
}

// Totals sums all credits and debits across wallets
func (r *WalletRepository) Totals(ctx context.Context) (int64, int64, error) {
	var rows []struct {
		Type  string
		Total int64
	}
	err := GetDB(ctx, r.db).Model(&models.WalletTransaction{}).
		Select("type, COALESCE(SUM(amount_cents), 0) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var credits, debits int64
	for _, row := range rows {
		switch entities.TransactionType(row.Type) {
		case entities.TransactionTypeCredit:
			credits = row.Total
		case entities.TransactionTypeDebit:
			debits = row.Total
		}
	}
	return credits, debits, nil
}

func walletToEntity(m *models.WalletAccount) *entities.WalletAccount {
	return &entities.WalletAccount{
		ID:           m.ID,
		ClientID:     m.ClientID,
		BalanceCents: m.BalanceCents,
		Balance:      entities.FromCents(m.BalanceCents),
		Currency:     m.Currency,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func walletTxToEntity(m *models.WalletTransaction) *entities.WalletTransaction {
	return &entities.WalletTransaction{
		ID:                m.ID,
		WalletID:          m.WalletID,
		Type:              entities.TransactionType(m.Type),
		AmountCents:       m.AmountCents,
		Amount:            entities.FromCents(m.AmountCents),
		BalanceAfterCents: m.BalanceAfterCents,
		BalanceAfter:      entities.FromCents(m.BalanceAfterCents),
		Description:       null.StringFromPtr(m.Description),
		Reference:         null.StringFromPtr(m.Reference),
		OperationID:       m.OperationID,
		CheckoutRef:       null.StringFromPtr(m.CheckoutRef),
		CreatedAt:         m.CreatedAt,
	}
}
