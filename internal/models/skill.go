package models

import (
	"time"

	"github.com/google/uuid"
)

type SkillCategory string

const (
	CategoryTechnology SkillCategory = "Technology"
	CategoryDesign     SkillCategory = "Design"
	CategoryBusiness   SkillCategory = "Business"
	CategoryLanguages  SkillCategory = "Languages"
	CategoryArts       SkillCategory = "Arts"
	CategorySports     SkillCategory = "Sports"
	CategoryMusic      SkillCategory = "Music"
	CategoryOther      SkillCategory = "Other"
)

// SkillCategories is the closed category set, in display order.
var SkillCategories = []SkillCategory{
	CategoryTechnology,
	CategoryDesign,
	CategoryBusiness,
	CategoryLanguages,
	CategoryArts,
	CategorySports,
	CategoryMusic,
	CategoryOther,
}

func ValidCategory(c SkillCategory) bool {
	for _, k := range SkillCategories {
		if k == c {
			return true
		}
	}
	return false
}

type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "Beginner"
	LevelIntermediate ExperienceLevel = "Intermediate"
	LevelAdvanced     ExperienceLevel = "Advanced"
	LevelExpert       ExperienceLevel = "Expert"
)

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// SkillOffered is a skill a user teaches. Visibility in search and
// swap-eligibility both require IsApproved.
type SkillOffered struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        SkillCategory   `gorm:"type:varchar(30);not null;index" json:"category"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`

	IsApproved      bool   `gorm:"default:false;index" json:"is_approved"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SkillOffered) TableName() string { return "skills_offered" }

// SkillWanted is a skill a user wants to learn.
type SkillWanted struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Name        string        `gorm:"type:varchar(100);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Category    SkillCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	Urgency     Urgency       `gorm:"type:varchar(10);default:'medium'" json:"urgency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SkillWanted) TableName() string { return "skills_wanted" }
