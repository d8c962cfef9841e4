package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "careconnect.backend/internal/domain/errors"
)

// StageStatus is the status of a single verification stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusSubmitted StageStatus = "submitted"
	StageStatusApproved  StageStatus = "approved"
	StageStatusRejected  StageStatus = "rejected"
)

// Valid reports whether s is a known stage status
func (s StageStatus) Valid() bool {
	switch s {
	case StageStatusPending, StageStatusSubmitted, StageStatusApproved, StageStatusRejected:
		return true
	}
	return false
}

// StageCount is the number of verification stages a provider passes
const StageCount = 4

var stageNames = [StageCount]string{"contact", "identity_background", "expertise", "behavioral"}

// StageName returns the name of stage n (1-based)
func StageName(n int) string {
	if n < 1 || n > StageCount {
		return ""
	}
	return stageNames[n-1]
}

// VerificationStage is one checkpoint of the provider verification workflow
type VerificationStage struct {
	Stage       int                    `json:"stage"`
	Name        string                 `json:"name"`
	Status      StageStatus            `json:"status"`
	Data        map[string]interface{} `json:"data"`
	SubmittedAt null.Time              `json:"submitted_at"`
	Notes       null.String            `json:"notes"`
	ReviewedBy  *uuid.UUID             `json:"reviewed_by"`
	ReviewedAt  null.Time              `json:"reviewed_at"`
}

// VerificationRecord holds the four stages of one provider
type VerificationRecord struct {
	ID         uuid.UUID           `json:"id"`
	ProviderID uuid.UUID           `json:"provider_id"`
	Stages     []VerificationStage `json:"stages"`
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewVerificationRecord returns a record with every stage pending
func NewVerificationRecord(id, providerID uuid.UUID, now time.Time) *VerificationRecord {
	rec := &VerificationRecord{
		ID:         id,
		ProviderID: providerID,
		Stages:     make([]VerificationStage, StageCount),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range rec.Stages {
		rec.Stages[i] = VerificationStage{
			Stage:  i + 1,
			Name:   stageNames[i],
			Status: StageStatusPending,
		}
	}
	return rec
}

// Stage returns a pointer to stage n (1-based)
func (r *VerificationRecord) Stage(n int) (*VerificationStage, error) {
	if n < 1 || n > StageCount || n > len(r.Stages) {
		return nil, fmt.Errorf("stage %d: %w", n, domainerrors.ErrInvalidInput)
	}
	return &r.Stages[n-1], nil
}

// AllStagesApproved reports whether every stage is approved
func (r *VerificationRecord) AllStagesApproved() bool {
	if len(r.Stages) != StageCount {
		return false
	}
	for _, s := range r.Stages {
		if s.Status != StageStatusApproved {
			return false
		}
	}
	return true
}

// CurrentStage is the first stage that is not approved, or 0 when all are
func (r *VerificationRecord) CurrentStage() int {
	for _, s := range r.Stages {
		if s.Status != StageStatusApproved {
			return s.Stage
		}
	}
	return 0
}

// Submit moves stage n to submitted. Only pending or rejected stages can be
// submitted and stage n requires stage n-1 to have been submitted already.
func (r *VerificationRecord) Submit(n int, data map[string]interface{}, now time.Time) error {
	stage, err := r.Stage(n)
	if err != nil {
		return err
	}
	if stage.Status != StageStatusPending && stage.Status != StageStatusRejected {
		return fmt.Errorf("stage %d is %s: %w", n, stage.Status, domainerrors.ErrInvalidTransition)
	}
	if n > 1 {
		if prev := r.Stages[n-2].Status; prev != StageStatusSubmitted && prev != StageStatusApproved {
			return fmt.Errorf("stage %d is %s, submit it before stage %d: %w", n-1, prev, n, domainerrors.ErrInvalidTransition)
		}
	}
	stage.Status = StageStatusSubmitted
	stage.Data = data
	stage.SubmittedAt = null.TimeFrom(now)
	stage.ReviewedAt = null.Time{}
	stage.ReviewedBy = nil
	r.UpdatedAt = now
	return nil
}

// Review approves or rejects a submitted stage
func (r *VerificationRecord) Review(n int, decision StageStatus, reviewer uuid.UUID, notes string, now time.Time) error {
	if decision != StageStatusApproved && decision != StageStatusRejected {
		return fmt.Errorf("decision %q: %w", decision, domainerrors.ErrInvalidInput)
	}
	stage, err := r.Stage(n)
	if err != nil {
		return err
	}
	if stage.Status != StageStatusSubmitted {
		return fmt.Errorf("stage %d is %s: %w", n, stage.Status, domainerrors.ErrInvalidTransition)
	}
	stage.Status = decision
	stage.Notes = null.NewString(notes, notes != "")
	rv := reviewer
	stage.ReviewedBy = &rv
	stage.ReviewedAt = null.TimeFrom(now)
	r.UpdatedAt = now
	return nil
}

// ApproveAll approves every stage at once. Stages that were never submitted
// block the approval.
func (r *VerificationRecord) ApproveAll(reviewer uuid.UUID, now time.Time) error {
	for _, s := range r.Stages {
		if s.Status == StageStatusPending {
			return fmt.Errorf("stage %d has not been submitted: %w", s.Stage, domainerrors.ErrInvalidTransition)
		}
	}
	rv := reviewer
	for i := range r.Stages {
		if r.Stages[i].Status == StageStatusApproved {
			continue
		}
		r.Stages[i].Status = StageStatusApproved
		r.Stages[i].ReviewedBy = &rv
		r.Stages[i].ReviewedAt = null.TimeFrom(now)
	}
	r.UpdatedAt = now
	return nil
}

// ResetToSubmitted puts every stage back to submitted for re-review
func (r *VerificationRecord) ResetToSubmitted(now time.Time) {
	for i := range r.Stages {
		r.Stages[i].Status = StageStatusSubmitted
		r.Stages[i].ReviewedBy = nil
		r.Stages[i].ReviewedAt = null.Time{}
	}
	r.UpdatedAt = now
}

// IsFullyVerified is true only when all four stages are approved and the
// account level status is approved.
func IsFullyVerified(rec *VerificationRecord, status VerificationStatus) bool {
	return rec != nil && rec.AllStagesApproved() && status == VerificationStatusApproved
}

// VerificationView is the API representation of a provider's verification state
type VerificationView struct {
	ProviderID      uuid.UUID           `json:"provider_id"`
	Stage1          StageStatus         `json:"stage1"`
	Stage2          StageStatus         `json:"stage2"`
	Stage3          StageStatus         `json:"stage3"`
	Stage4          StageStatus         `json:"stage4"`
	Stages          []VerificationStage `json:"stages"`
	CurrentStage    int                 `json:"current_stage"`
	AccountStatus   VerificationStatus  `json:"account_status"`
	Verified        bool                `json:"verified"`
	Available       bool                `json:"available"`
	Blacklisted     bool                `json:"blacklisted"`
	IsFullyVerified bool                `json:"is_fully_verified"`
	StatusMismatch  bool                `json:"status_mismatch"`
	Version         int                 `json:"version"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewVerificationView combines a record with its provider's account state
func NewVerificationView(rec *VerificationRecord, p *Provider) *VerificationView {
	v := &VerificationView{
		ProviderID:      p.ID,
		Stages:          rec.Stages,
		CurrentStage:    rec.CurrentStage(),
		AccountStatus:   p.VerificationStatus,
		Verified:        p.Verified,
		Available:       p.Available,
		Blacklisted:     p.Blacklisted,
		IsFullyVerified: IsFullyVerified(rec, p.VerificationStatus),
		Version:         rec.Version,
		UpdatedAt:       rec.UpdatedAt,
	}
	statuses := []*StageStatus{&v.Stage1, &v.Stage2, &v.Stage3, &v.Stage4}
	for i, s := range rec.Stages {
		if i < len(statuses) {
			*statuses[i] = s.Status
		}
	}
	v.StatusMismatch = rec.AllStagesApproved() != (p.VerificationStatus == VerificationStatusApproved)
	return v
}

// SubmitStageInput is a provider's submission of one stage
type SubmitStageInput struct {
	Stage int                    `json:"stage" binding:"required,min=1,max=4"`
	Data  map[string]interface{} `json:"data" binding:"required"`
}

// ReviewStageInput is an admin decision on one stage
type ReviewStageInput struct {
	ProviderID uuid.UUID   `json:"providerId" binding:"required"`
	Stage      int         `json:"stage" binding:"required,min=1,max=4"`
	Decision   StageStatus `json:"decision" binding:"required,oneof=approved rejected"`
	Notes      string      `json:"notes" binding:"omitempty,max=2000"`
}

// ReviewQueueItem is one provider waiting on admin review
type ReviewQueueItem struct {
	Provider     *Provider         `json:"provider"`
	Verification *VerificationView `json:"verification"`
}
