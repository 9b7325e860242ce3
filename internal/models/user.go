package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`

	Location     string `gorm:"type:varchar(120)" json:"location"`
	ProfilePhoto string `gorm:"type:text" json:"profile_photo"`

	// Availability flags, e.g. ["weekends","evenings"]
	Availability datatypes.JSON `json:"availability"`

	IsPublic  bool   `gorm:"default:true" json:"is_public"`
	IsBanned  bool   `gorm:"default:false;index" json:"is_banned"`
	BanReason string `gorm:"type:text" json:"ban_reason,omitempty"`

	// Aggregate rating, recomputed from the ratings table on every write.
	RatingAverage float64 `gorm:"default:0" json:"rating_average"`
	RatingCount   int64   `gorm:"default:0" json:"rating_count"`

	CompletedSwaps int64 `gorm:"default:0" json:"completed_swaps"`

	LastActive time.Time `gorm:"index" json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	SkillsOffered []SkillOffered `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"skills_offered,omitempty"`
	SkillsWanted  []SkillWanted  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"skills_wanted,omitempty"`
}
