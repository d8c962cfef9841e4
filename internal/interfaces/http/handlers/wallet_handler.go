package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/interfaces/http/middleware"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/utils"
)

type walletService interface {
	Get(ctx context.Context, identity entities.Identity) (*entities.WalletSummary, error)
	ListTransactions(ctx context.Context, identity entities.Identity, pagination utils.PaginationParams) ([]*entities.WalletTransaction, int64, error)
	Credit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error)
	Debit(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error)
	VerifyCheckout(ctx context.Context, identity entities.Identity, input *entities.VerifyPaymentInput) (*entities.WalletOperationResult, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase walletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// Get returns the balance and recent transactions
// GET /api/v1/wallet
func (h *WalletHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	summary, err := h.walletUsecase.Get(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// Transactions GET /api/v1/wallet/transactions?page=&limit=
func (h *WalletHandler) Transactions(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	txs, total, err := h.walletUsecase.ListTransactions(c.Request.Context(), identity, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txs == nil {
		txs = []*entities.WalletTransaction{}
	}
	response.Paginated(c, http.StatusOK, "transactions", txs, total, pagination)
}

// Add credits the wallet. The Idempotency-Key header is the ledger operation id.
// POST /api/v1/wallet/add
func (h *WalletHandler) Add(c *gin.Context) {
	h.move(c, h.walletUsecase.Credit)
}

// Withdraw debits the wallet
// POST /api/v1/wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.move(c, h.walletUsecase.Debit)
}

type walletMoveFunc func(ctx context.Context, identity entities.Identity, input *entities.WalletAmountInput, operationID string) (*entities.WalletOperationResult, error)

func (h *WalletHandler) move(c *gin.Context, fn walletMoveFunc) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.WalletAmountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := fn(c.Request.Context(), identity, &input, middleware.GetIdempotencyKey(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// VerifyPayment verifies a checkout signature and credits the wallet
// POST /api/v1/wallet/verify-payment
func (h *WalletHandler) VerifyPayment(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.walletUsecase.VerifyCheckout(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
