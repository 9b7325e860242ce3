package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageType string

const (
	MessageAnnouncement  MessageType = "announcement"
	MessageMaintenance   MessageType = "maintenance"
	MessageFeatureUpdate MessageType = "feature_update"
	MessageWarning       MessageType = "warning"
)

func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageAnnouncement, MessageMaintenance, MessageFeatureUpdate, MessageWarning:
		return true
	}
	return false
}

type MessagePriority string

const (
	PriorityLow      MessagePriority = "low"
	PriorityMedium   MessagePriority = "medium"
	PriorityHigh     MessagePriority = "high"
	PriorityCritical MessagePriority = "critical"
)

func ValidMessagePriority(p MessagePriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// AdminMessage is a platform-wide announcement authored by an admin.
type AdminMessage struct {
	ID      uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title   string          `gorm:"type:varchar(200);not null" json:"title"`
	Content string          `gorm:"type:varchar(2000);not null" json:"content"`
	Type    MessageType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Priority MessagePriority `gorm:"type:varchar(10);default:'medium'" json:"priority"`

	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	ScheduledFor time.Time  `gorm:"index" json:"scheduled_for"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`

	SentByID uuid.UUID `gorm:"type:uuid;not null" json:"sent_by_id"`

	// ReadBy entries: [{"user_id": "...", "read_at": "..."}]
	ReadBy datatypes.JSON `json:"read_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SentBy *User `gorm:"foreignKey:SentByID" json:"sent_by,omitempty"`
}
