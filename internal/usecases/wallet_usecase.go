package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/domain/repositories"
	"careconnect.backend/internal/infrastructure/metrics"
	"careconnect.backend/pkg/crypto"
	"careconnect.backend/pkg/utils"
)

const recentTransactions = 10

// ledger applies wallet operations. The balance update and the ledger row are
// written in one transaction and the operation id makes a replay a no-op.
type ledger struct {
	walletRepo repositories.WalletRepository
	uow        repositories.UnitOfWork
}

func (l *ledger) apply(ctx context.Context, op entities.WalletOperation) (*entities.WalletOperationResult, error) {
	if op.AmountCents <= 0 {
		return nil, domainerrors.BadRequest("amount must be positive")
	}
	if op.OperationID == "" {
		op.OperationID = utils.GenerateUUIDv7().String()
	}

	var result *entities.WalletOperationResult
	err := l.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := l.walletRepo.GetOrCreate(ctx, op.ClientID)
		if err != nil {
			return err
		}

		if op.CheckoutRef != "" {
			if err := l.checkoutUnclaimed(ctx, wallet.ID, op.CheckoutRef); err != nil {
				return err
			}
		}

		existing, err := l.walletRepo.GetTransactionByOperationID(ctx, wallet.ID, op.OperationID)
		switch {
		case err == nil:
			if err := sameOperation(existing, op); err != nil {
				return err
			}
			result = &entities.WalletOperationResult{Wallet: wallet, Transaction: existing, Replayed: true}
			return nil
		case !errors.Is(err, domainerrors.ErrNotFound):
			return err
		}

		delta := op.AmountCents
		if op.Type == entities.TransactionTypeDebit {
			delta = -delta
		}
		wallet, err = l.walletRepo.AdjustBalance(ctx, wallet.ID, delta)
		if err != nil {
			return err
		}

		tx := &entities.WalletTransaction{
			ID:                utils.GenerateUUIDv7(),
			WalletID:          wallet.ID,
			Type:              op.Type,
			AmountCents:       op.AmountCents,
			Amount:            entities.FromCents(op.AmountCents),
			BalanceAfterCents: wallet.BalanceCents,
			BalanceAfter:      entities.FromCents(wallet.BalanceCents),
			Description:       null.NewString(op.Description, op.Description != ""),
			Reference:         null.NewString(op.Reference, op.Reference != ""),
			OperationID:       op.OperationID,
			CheckoutRef:       null.NewString(op.CheckoutRef, op.CheckoutRef != ""),
			CreatedAt:         now(),
		}
		if err := l.walletRepo.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		result = &entities.WalletOperationResult{Wallet: wallet, Transaction: tx}
		return nil
	})

	// a concurrent request with the same operation id won the insert
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		result, err = l.replay(ctx, op)
	}
	if err != nil {
		metrics.WalletOperations.WithLabelValues(string(op.Type), walletOutcome(err)).Inc()
		return nil, fmt.Errorf("wallet %s: %w", op.Type, err)
	}

	outcome := metrics.OutcomeOK
	if result.Replayed {
		outcome = metrics.OutcomeReplayed
	}
	metrics.WalletOperations.WithLabelValues(string(op.Type), outcome).Inc()
	return result, nil
}

func (l *ledger) replay(ctx context.Context, op entities.WalletOperation) (*entities.WalletOperationResult, error) {
	// with a checkout ref, nothing in this wallet means the insert lost to
	// another wallet holding the same ref
	claimed := func(err error) error {
		if op.CheckoutRef != "" && errors.Is(err, domainerrors.ErrNotFound) {
			return errCheckoutClaimed
		}
		return err
	}
	wallet, err := l.walletRepo.GetByClientID(ctx, op.ClientID)
	if err != nil {
		return nil, claimed(err)
	}
	existing, err := l.walletRepo.GetTransactionByOperationID(ctx, wallet.ID, op.OperationID)
	if err != nil {
		return nil, claimed(err)
	}
	if err := sameOperation(existing, op); err != nil {
		return nil, err
	}
	return &entities.WalletOperationResult{Wallet: wallet, Transaction: existing, Replayed: true}, nil
}

var errCheckoutClaimed = domainerrors.Conflict("payment was already credited to another wallet")

// checkoutUnclaimed rejects a checkout payment already credited to a different wallet
func (l *ledger) checkoutUnclaimed(ctx context.Context, walletID uuid.UUID, ref string) error {
	existing, err := l.walletRepo.GetTransactionByCheckoutRef(ctx, ref)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.WalletID != walletID {
		return errCheckoutClaimed
	}
	return nil
}

// sameOperation rejects an operation id reused for a different movement
func sameOperation(tx *entities.WalletTransaction, op entities.WalletOperation) error {
	if tx.Type != op.Type || tx.AmountCents != op.AmountCents {
		return domainerrors.Conflict("operation id was already used for a different wallet operation")
	}
	return nil
}

func walletOutcome(err error) string {
	if errors.Is(err, domainerrors.ErrInsufficientFunds) || errors.Is(err, domainerrors.ErrConflict) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}

// WalletUsecase handles client wallets
type WalletUsecase struct {
	clients        ClientResolver
	walletRepo     repositories.WalletRepository
	ledger         *ledger
	checkoutSecret string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	clients ClientResolver,
	walletRepo repositories.WalletRepository,
	uow repositories.UnitOfWork,
	checkoutSecret string,
) *WalletUsecase {
	return &WalletUsecase{
		clients:        clients,
		walletRepo:     walletRepo,
		ledger:         &ledger{walletRepo: walletRepo, uow: uow},
		checkoutSecret: checkoutSecret,
	}
}

// Get returns the caller's wallet, creating it on first access, with its
// most recent transactions.
func (u *WalletUsecase) Get(ctx context.Context, identity entities.Identity) (*entities.WalletSummary, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	wallet, err := u.walletRepo.GetOrCreate(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	recent, _, err := u.walletRepo.ListTransactions(ctx, wallet.ID, utils.GetPaginationParams(1, recentTransactions))
	if err != nil {
		return nil, err
	}
	return &entities.WalletSummary{Wallet: wallet, RecentTransactions: recent}, nil
}

// ListTransactions pages the caller's ledger
func (u *WalletUsecase) ListTransactions(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, 0, err
	}
	wallet, err := u.walletRepo.GetOrCreate(ctx, client.ID)
	if err != nil {
		return nil, 0, err
	}
	return u.walletRepo.ListTransactions(ctx, wallet.ID, pagination)
}

// Credit adds funds to the caller's wallet
func (u *WalletUsecase) Credit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error) {
	return u.move(ctx, identity, entities.TransactionTypeCredit, input, operationID)
}

// Debit withdraws funds; the balance never goes below zero
func (u *WalletUsecase) Debit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error) {
	return u.move(ctx, identity, entities.TransactionTypeDebit, input, operationID)
}

func (u *WalletUsecase) move(ctx context.Context, identity entities.Identity, typ entities.TransactionType, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	return u.ledger.apply(ctx, entities.WalletOperation{
		ClientID:    client.ID,
		Type:        typ,
		AmountCents: entities.ToCents(input.Amount),
		Description: input.Description,
		OperationID: operationID,
	})
}

// VerifyCheckout checks a checkout callback signature and credits the paid
// amount. The signature covers the caller's client id and the amount, and the
// payment id is both the operation id and a checkout ref unique across wallets,
// so a payment credits exactly one wallet once.
func (u *WalletUsecase) VerifyCheckout(ctx context.Context, identity entities.Identity, input *entities.VerifyPaymentInput) (*entities.WalletOperationResult, error) {
	client, err := u.clients.ResolveClient(ctx, identity)
	if err != nil {
		return nil, err
	}
	amount := entities.ToCents(input.Amount)
	payload := crypto.CheckoutPayload(input.OrderID, input.PaymentID, client.ID.String(), amount)
	if !crypto.VerifyHMAC(u.checkoutSecret, payload, input.Signature) {
		metrics.WalletOperations.WithLabelValues(string(entities.TransactionTypeCredit), metrics.OutcomeRejected).Inc()
		return nil, domainerrors.ErrInvalidSignature
	}
	return u.ledger.apply(ctx, entities.WalletOperation{
		ClientID:    client.ID,
		Type:        entities.TransactionTypeCredit,
		AmountCents: amount,
		Description: "Wallet top-up",
		Reference:   input.OrderID,
		OperationID: input.PaymentID,
		CheckoutRef: input.PaymentID,
	})
}
