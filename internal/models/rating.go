package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SwapID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_swap_rater" json:"swap_id"`
	RaterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_swap_rater" json:"rater_id"`
	RateeID uuid.UUID `gorm:"type:uuid;not null;index" json:"ratee_id"`

	Score    int    `gorm:"not null" json:"score"` // 1-5
	Feedback string `gorm:"type:varchar(1000)" json:"feedback"`

	// Category sub-scores, 1-5 each.
	Communication   int `gorm:"not null" json:"communication"`
	Punctuality     int `gorm:"not null" json:"punctuality"`
	SkillQuality    int `gorm:"not null" json:"skill_quality"`
	Professionalism int `gorm:"not null" json:"professionalism"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Swap  *Swap `gorm:"foreignKey:SwapID" json:"swap,omitempty"`
	Rater *User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Ratee *User `gorm:"foreignKey:RateeID" json:"ratee,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
