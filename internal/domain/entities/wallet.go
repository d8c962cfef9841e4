package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// WalletAccount is a client's stored balance
type WalletAccount struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	BalanceCents int64     `json:"-"`
	Balance      float64   `json:"balance"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WalletTransaction is an append-only ledger entry
type WalletTransaction struct {
	ID                uuid.UUID       `json:"id"`
	WalletID          uuid.UUID       `json:"wallet_id"`
	Type              TransactionType `json:"type"`
	AmountCents       int64           `json:"-"`
	Amount            float64         `json:"amount"`
	BalanceAfterCents int64           `json:"-"`
	BalanceAfter      float64         `json:"balance_after"`
	Description       null.String     `json:"description"`
	Reference         null.String     `json:"reference"`
	OperationID       string          `json:"operation_id"`
	CheckoutRef       null.String     `json:"checkout_ref"`
	CreatedAt         time.Time       `json:"created_at"`
}

// WalletSummary is the wallet with its most recent entries
type WalletSummary struct {
	Wallet             *WalletAccount       `json:"wallet"`
	RecentTransactions []*WalletTransaction `json:"recent_transactions"`
}

// WalletOperation is a single balance movement
type WalletOperation struct {
	ClientID    uuid.UUID
	Type        TransactionType
	AmountCents int64
	Description string
	Reference   string
	OperationID string
	// CheckoutRef is the gateway payment id; it can be credited to one wallet only
	CheckoutRef string
}

// WalletAmountInput is a credit or debit request
type WalletAmountInput struct {
	Amount      float64 `json:"amount" binding:"required,gt=0,lte=1000000"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

// VerifyPaymentInput is the checkout callback payload
type VerifyPaymentInput struct {
	OrderID   string  `json:"orderId" binding:"required,max=128"`
	PaymentID string  `json:"paymentId" binding:"required,max=128"`
	Signature string  `json:"signature" binding:"required,max=256"`
	Amount    float64 `json:"amount" binding:"required,gt=0,lte=1000000"`
}

// ToCents converts a decimal amount to minor units
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts minor units to a decimal amount
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// RoundCents rounds an amount to two decimals
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// WalletOperationResult is the outcome of a credit or debit. Replayed is true
// when the operation id had already been applied.
type WalletOperationResult struct {
	Wallet      *WalletAccount     `json:"wallet"`
	Transaction *WalletTransaction `json:"transaction"`
	Replayed    bool               `json:"replayed"`
}
