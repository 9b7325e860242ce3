package swaps

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

var (
	ErrInvalidParty        = errors.New("cannot create swap request with yourself")
	ErrProviderUnavailable = errors.New("provider not available")
	ErrSkillMismatch       = errors.New("referenced skill not offered or not approved")
	ErrDuplicatePending    = errors.New("a pending request to this provider already exists")
	ErrNotAuthorized       = errors.New("not authorized for this swap")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrValidation          = errors.New("invalid swap request")
)

// ProposalInput carries everything a requester submits when proposing a swap.
type ProposalInput struct {
	ProviderID       uuid.UUID
	OfferedSkillID   uuid.UUID
	RequestedSkillID uuid.UUID
	Message          string
	ProposedDate     time.Time
	Duration         float64 // hours
	Format           models.SwapFormat
	Location         string
}

// ValidateProposal checks the field-level rules before anything is persisted.
func ValidateProposal(in ProposalInput) error {
	if in.ProviderID == uuid.Nil || in.OfferedSkillID == uuid.Nil || in.RequestedSkillID == uuid.Nil {
		return ErrValidation
	}
	if in.ProposedDate.IsZero() {
		return ErrValidation
	}
	if in.Duration < 0.5 || in.Duration > 8 {
		return ErrValidation
	}
	if !models.ValidSwapFormat(in.Format) {
		return ErrValidation
	}
	if in.Format.RequiresLocation() && in.Location == "" {
		return ErrValidation
	}
	if len(in.Message) > 1000 {
		return ErrValidation
	}
	return nil
}

// GuardRespond: only the provider may respond, and only while pending.
func GuardRespond(s *models.Swap, callerID uuid.UUID, decision models.SwapStatus) error {
	if decision != models.SwapStatusAccepted && decision != models.SwapStatusRejected {
		return ErrValidation
	}
	if s.ProviderID != callerID {
		return ErrNotAuthorized
	}
	if !s.Status.CanTransitionTo(decision) {
		return ErrInvalidTransition
	}
	return nil
}

// GuardCancel: the requester (or an admin) may cancel a pending or accepted swap.
func GuardCancel(s *models.Swap, callerID uuid.UUID, isAdmin bool) error {
	if s.RequesterID != callerID && !isAdmin {
		return ErrNotAuthorized
	}
	if !s.Status.CanTransitionTo(models.SwapStatusCancelled) {
		return ErrInvalidTransition
	}
	return nil
}

// GuardComplete: either participant (or an admin) may complete an accepted
// swap. The transition guard is what makes repeated completion calls fail,
// so the counter bump below can never run twice.
func GuardComplete(s *models.Swap, callerID uuid.UUID, isAdmin bool) error {
	if !s.Status.CanTransitionTo(models.SwapStatusCompleted) {
		return ErrInvalidTransition
	}
	if !s.IsParticipant(callerID) && !isAdmin {
		return ErrNotAuthorized
	}
	return nil
}
