package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careconnect.backend/internal/domain/entities"
	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/usecases"
	"careconnect.backend/pkg/utils"
)

type verificationFixture struct {
	identity  entities.Identity
	provider  *entities.Provider
	record    *entities.VerificationRecord
	resolver  *MockProviderResolver
	providers *MockProviderRepository
	records   *MockVerificationRepository
	uow       *MockUnitOfWork
	events    *recordingPublisher
	uc        *usecases.VerificationUsecase
}

func newVerificationFixture() *verificationFixture {
	f := &verificationFixture{
		identity:  providerIdentity(),
		resolver:  new(MockProviderResolver),
		providers: new(MockProviderRepository),
		records:   new(MockVerificationRepository),
		uow:       new(MockUnitOfWork),
		events:    &recordingPublisher{},
	}
	f.provider = &entities.Provider{
		ID:                 uuid.New(),
		UserID:             f.identity.UserID,
		Email:              f.identity.Email,
		VerificationStatus: entities.VerificationStatusPending,
	}
	f.record = entities.NewVerificationRecord(uuid.New(), f.provider.ID, time.Now())

	f.resolver.On("ResolveProvider", mock.Anything, f.identity).Return(f.provider, nil)
	f.providers.On("GetByID", mock.Anything, f.provider.ID).Return(f.provider, nil)
	f.providers.On("GetByIDForUpdate", mock.Anything, f.provider.ID).Return(f.provider, nil)
	f.providers.On("UpdateStatus", mock.Anything, f.provider).Return(nil)
	f.records.On("GetByProviderID", mock.Anything, f.provider.ID).Return(f.record, nil)
	f.records.On("Save", mock.Anything, f.record).Return(nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)

	f.uc = usecases.NewVerificationUsecase(f.resolver, f.providers, f.records, f.uow, f.events)
	return f
}

func (f *verificationFixture) submitAll(t *testing.T) {
	t.Helper()
	for n := 1; n <= entities.StageCount; n++ {
		_, err := f.uc.SubmitStage(context.Background(), f.identity, &entities.SubmitStageInput{
			Stage: n,
			Data:  map[string]interface{}{"n": n},
		})
		require.NoError(t, err)
	}
}

func TestVerificationUsecase_SubmitStage(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	view, err := f.uc.SubmitStage(ctx, f.identity, &entities.SubmitStageInput{Stage: 1, Data: map[string]interface{}{"phone": "123"}})
	require.NoError(t, err)
	assert.Equal(t, entities.StageStatusSubmitted, view.Stage1)
	assert.Equal(t, entities.StageStatusPending, view.Stage2)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, entities.EventVerificationUpdated, f.events.events[0].Type)
	assert.Equal(t, f.identity.UserID, f.events.events[0].RecipientID)

	// stage 3 cannot skip stage 2
	_, err = f.uc.SubmitStage(ctx, f.identity, &entities.SubmitStageInput{Stage: 3, Data: map[string]interface{}{}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	// submitted stages cannot be resubmitted
	_, err = f.uc.SubmitStage(ctx, f.identity, &entities.SubmitStageInput{Stage: 1, Data: map[string]interface{}{}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	assert.Len(t, f.events.events, 1)
}

func TestVerificationUsecase_SubmitStage_Blacklisted(t *testing.T) {
	f := newVerificationFixture()
	f.provider.Blacklisted = true

	_, err := f.uc.SubmitStage(context.Background(), f.identity, &entities.SubmitStageInput{Stage: 1, Data: map[string]interface{}{}})
	assert.ErrorIs(t, err, domainerrors.ErrBlacklisted)
	f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVerificationUsecase_ReviewLastStageApprovesAccount(t *testing.T) {
	f := newVerificationFixture()
	admin := adminIdentity()
	f.submitAll(t)

	for n := 1; n <= entities.StageCount; n++ {
		view, err := f.uc.ReviewStage(context.Background(), admin, &entities.ReviewStageInput{
			ProviderID: f.provider.ID,
			Stage:      n,
			Decision:   entities.StageStatusApproved,
		})
		require.NoError(t, err)
		if n < entities.StageCount {
			assert.False(t, view.IsFullyVerified)
			assert.False(t, f.provider.Verified)
		}
	}

	assert.Equal(t, entities.VerificationStatusApproved, f.provider.VerificationStatus)
	assert.True(t, f.provider.Verified)
	assert.True(t, f.provider.Available)
	assert.True(t, entities.IsFullyVerified(f.record, f.provider.VerificationStatus))
	require.NotNil(t, f.record.Stages[3].ReviewedBy)
	assert.Equal(t, admin.UserID, *f.record.Stages[3].ReviewedBy)
}

func TestVerificationUsecase_RejectStageOfApprovedAccountDropsToPending(t *testing.T) {
	f := newVerificationFixture()
	f.submitAll(t)
	_, err := f.uc.Approve(context.Background(), adminIdentity(), f.provider.ID)
	require.NoError(t, err)
	require.True(t, f.provider.Verified)

	// approved stages are not reviewable, so reopen stage 2 first
	f.record.Stages[1].Status = entities.StageStatusSubmitted
	view, err := f.uc.ReviewStage(context.Background(), adminIdentity(), &entities.ReviewStageInput{
		ProviderID: f.provider.ID,
		Stage:      2,
		Decision:   entities.StageStatusRejected,
		Notes:      "document expired",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationStatusPending, view.AccountStatus)
	assert.False(t, view.Verified)
	assert.False(t, view.IsFullyVerified)
	assert.Equal(t, "document expired", f.record.Stages[1].Notes.String)
}

func TestVerificationUsecase_ApproveBlockedByPendingStage(t *testing.T) {
	f := newVerificationFixture()
	_, err := f.uc.SubmitStage(context.Background(), f.identity, &entities.SubmitStageInput{Stage: 1, Data: map[string]interface{}{}})
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), adminIdentity(), f.provider.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	assert.Equal(t, entities.VerificationStatusPending, f.provider.VerificationStatus)
	assert.False(t, f.provider.Verified)
	f.providers.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestVerificationUsecase_AccountActions(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()
	admin := adminIdentity()
	f.submitAll(t)

	view, err := f.uc.Approve(ctx, admin, f.provider.ID)
	require.NoError(t, err)
	assert.True(t, view.IsFullyVerified)
	assert.False(t, view.StatusMismatch)

	view, err = f.uc.Unapprove(ctx, admin, f.provider.ID, "")
	require.NoError(t, err)
	for _, s := range view.Stages {
		assert.Equal(t, entities.StageStatusSubmitted, s.Status)
	}
	assert.Equal(t, entities.VerificationStatusPending, view.AccountStatus)
	assert.False(t, view.Available)

	view, err = f.uc.Reject(ctx, admin, f.provider.ID, "incomplete")
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationStatusRejected, view.AccountStatus)
	assert.Equal(t, "incomplete", f.provider.StatusReason.String)

	view, err = f.uc.Blacklist(ctx, admin, f.provider.ID, "fraud")
	require.NoError(t, err)
	assert.True(t, view.Blacklisted)
	assert.False(t, view.Verified)

	_, err = f.uc.Approve(ctx, admin, f.provider.ID)
	assert.ErrorIs(t, err, domainerrors.ErrBlacklisted)
}

func TestVerificationUsecase_StaleVersionIsConflict(t *testing.T) {
	f := newVerificationFixture()
	records := new(MockVerificationRepository)
	records.On("GetByProviderID", mock.Anything, f.provider.ID).Return(f.record, nil)
	records.On("Save", mock.Anything, f.record).Return(domainerrors.ErrConflict)
	uc := usecases.NewVerificationUsecase(f.resolver, f.providers, records, f.uow, f.events)

	_, err := uc.SubmitStage(context.Background(), f.identity, &entities.SubmitStageInput{Stage: 1, Data: map[string]interface{}{}})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Empty(t, f.events.events)
}

func TestVerificationUsecase_Get(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	view, err := f.uc.Get(ctx, f.identity, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, view.ProviderID)

	_, err = f.uc.Get(ctx, adminIdentity(), f.provider.ID)
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, providerIdentity(), f.provider.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	missing := uuid.New()
	f.providers.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound)
	_, err = f.uc.Get(ctx, adminIdentity(), missing)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerificationUsecase_ListForReviewDefaultsToSubmitted(t *testing.T) {
	f := newVerificationFixture()
	page := utils.GetPaginationParams(1, 10)
	f.records.On("ListProviderIDsWithStageStatus", mock.Anything, entities.StageStatusSubmitted, page).
		Return([]uuid.UUID{f.provider.ID}, int64(1), nil).Once()

	items, total, err := f.uc.ListForReview(context.Background(), "", page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, f.provider.ID, items[0].Provider.ID)
	assert.Equal(t, f.provider.ID, items[0].Verification.ProviderID)
}
