package models

import (
	"time"

	"github.com/google/uuid"
)

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCompleted SwapStatus = "completed"
	SwapStatusCancelled SwapStatus = "cancelled"
)

func ValidSwapStatus(s SwapStatus) bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected,
		SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the lifecycle graph:
// pending -> accepted | rejected | cancelled
// accepted -> completed | cancelled
// rejected, completed, cancelled are terminal.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	switch s {
	case SwapStatusPending:
		return next == SwapStatusAccepted || next == SwapStatusRejected || next == SwapStatusCancelled
	case SwapStatusAccepted:
		return next == SwapStatusCompleted || next == SwapStatusCancelled
	}
	return false
}

func (s SwapStatus) Terminal() bool {
	return s == SwapStatusRejected || s == SwapStatusCompleted || s == SwapStatusCancelled
}

type SwapFormat string

const (
	FormatOnline   SwapFormat = "online"
	FormatInPerson SwapFormat = "in-person"
	FormatHybrid   SwapFormat = "hybrid"
)

func ValidSwapFormat(f SwapFormat) bool {
	switch f {
	case FormatOnline, FormatInPerson, FormatHybrid:
		return true
	}
	return false
}

// RequiresLocation reports whether the format implies physical presence.
func (f SwapFormat) RequiresLocation() bool {
	return f == FormatInPerson || f == FormatHybrid
}

// SkillSnapshot is the skill as it looked when the swap was proposed.
// Later edits to the owner's skill list do not rewrite history.
type SkillSnapshot struct {
	SkillID     uuid.UUID `gorm:"type:uuid" json:"skill_id"`
	Name        string    `gorm:"type:varchar(100)" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

type Swap struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_swaps_requester_status" json:"requester_id"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index:idx_swaps_provider_status" json:"provider_id"`

	SkillOffered   SkillSnapshot `gorm:"embedded;embeddedPrefix:skill_offered_" json:"skill_offered"`
	SkillRequested SkillSnapshot `gorm:"embedded;embeddedPrefix:skill_requested_" json:"skill_requested"`

	Status SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swaps_requester_status;index:idx_swaps_provider_status" json:"status"`

	Message      string     `gorm:"type:varchar(1000)" json:"message"`
	ProposedDate time.Time  `gorm:"not null;index" json:"proposed_date"`
	Duration     float64    `gorm:"not null" json:"duration"` // hours, 0.5..8
	Format       SwapFormat `gorm:"type:varchar(20);not null" json:"format"`
	Location     string     `gorm:"type:varchar(200)" json:"location,omitempty"`

	ResponseDate    *time.Time `json:"response_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	IsRatedByRequester bool `gorm:"default:false" json:"is_rated_by_requester"`
	IsRatedByProvider  bool `gorm:"default:false" json:"is_rated_by_provider"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider  *User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

// IsParticipant reports whether the user is either side of the swap.
func (s *Swap) IsParticipant(userID uuid.UUID) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}

// CounterpartyOf returns the other participant, or uuid.Nil for non-participants.
func (s *Swap) CounterpartyOf(userID uuid.UUID) uuid.UUID {
	switch userID {
	case s.RequesterID:
		return s.ProviderID
	case s.ProviderID:
		return s.RequesterID
	}
	return uuid.Nil
}
