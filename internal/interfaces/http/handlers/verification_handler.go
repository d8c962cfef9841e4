package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/utils"
)

type verificationService interface {
	GetForProvider(ctx context.Context, identity entities.Identity) (*entities.VerificationView, error)
	Get(ctx context.Context, identity entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error)
	SubmitStage(ctx context.Context, identity entities.Identity, input *entities.SubmitStageInput) (*entities.VerificationView, error)
	ReviewStage(ctx context.Context, admin entities.Identity, input *entities.ReviewStageInput) (*entities.VerificationView, error)
	Approve(ctx context.Context, admin entities.Identity, providerID uuid.UUID) (*entities.VerificationView, error)
	Reject(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error)
	Blacklist(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error)
	Unapprove(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error)
	ListForReview(ctx context.Context, status entities.StageStatus, pagination utils.PaginationParams) ([]*entities.ReviewQueueItem, int64, error)
}

// VerificationHandler serves the four-stage provider verification workflow
type VerificationHandler struct {
	verificationUsecase verificationService
}

func NewVerificationHandler(verificationUsecase verificationService) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// GetOwn returns the caller's verification state
// GET /api/v1/provider/verification
func (h *VerificationHandler) GetOwn(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	view, err := h.verificationUsecase.GetForProvider(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": view})
}

// Get GET /api/v1/verification/:providerId
func (h *VerificationHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	providerID, ok := uuidParam(c, "providerId", "provider")
	if !ok {
		return
	}
	view, err := h.verificationUsecase.Get(c.Request.Context(), identity, providerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": view})
}

// SubmitStage POST /api/v1/verification/submit-stage
func (h *VerificationHandler) SubmitStage(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.SubmitStageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	view, err := h.verificationUsecase.SubmitStage(c.Request.Context(), identity, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": view})
}

// Review records an admin decision on one stage
// POST /api/v1/admin/verifications/review
func (h *VerificationHandler) Review(c *gin.Context) {
	admin, ok := currentIdentity(c)
	if !ok {
		return
	}
	var input entities.ReviewStageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	view, err := h.verificationUsecase.ReviewStage(c.Request.Context(), admin, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": view})
}

// ListForReview GET /api/v1/admin/verifications?status=submitted
func (h *VerificationHandler) ListForReview(c *gin.Context) {
	pagination, ok := paginationParams(c)
	if !ok {
		return
	}
	status := entities.StageStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.Error(c, domainerrors.BadRequest("Invalid stage status"))
		return
	}
	items, total, err := h.verificationUsecase.ListForReview(c.Request.Context(), status, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []*entities.ReviewQueueItem{}
	}
	response.Paginated(c, http.StatusOK, "providers", items, total, pagination)
}

// Approve POST /api/v1/admin/providers/:id/approve
func (h *VerificationHandler) Approve(c *gin.Context) {
	h.accountAction(c, func(ctx context.Context, admin entities.Identity, id uuid.UUID, _ string) (*entities.VerificationView, error) {
		return h.verificationUsecase.Approve(ctx, admin, id)
	})
}

// Reject POST /api/v1/admin/providers/:id/reject
func (h *VerificationHandler) Reject(c *gin.Context) {
	h.accountAction(c, h.verificationUsecase.Reject)
}

// Blacklist POST /api/v1/admin/providers/:id/blacklist
func (h *VerificationHandler) Blacklist(c *gin.Context) {
	h.accountAction(c, h.verificationUsecase.Blacklist)
}

// Unapprove POST /api/v1/admin/providers/:id/unapprove
func (h *VerificationHandler) Unapprove(c *gin.Context) {
	h.accountAction(c, h.verificationUsecase.Unapprove)
}

type accountActionFunc func(ctx context.Context, admin entities.Identity, providerID uuid.UUID, reason string) (*entities.VerificationView, error)

func (h *VerificationHandler) accountAction(c *gin.Context, action accountActionFunc) {
	admin, ok := currentIdentity(c)
	if !ok {
		return
	}
	providerID, ok := uuidParam(c, "id", "provider")
	if !ok {
		return
	}
	var input entities.ProviderActionInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BindError(c, err)
			return
		}
	}
	view, err := action(c.Request.Context(), admin, providerID, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": view})
}
