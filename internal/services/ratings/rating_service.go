package ratings

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

var (
	ErrSwapNotCompleted = errors.New("can only rate completed swaps")
	ErrNotParticipant   = errors.New("you can only rate swaps you participated in")
	ErrInvalidRatee     = errors.New("invalid ratee for this swap")
	ErrDuplicateRating  = errors.New("you have already rated this swap")
	ErrNotAuthorized    = errors.New("not authorized for this rating")
	ErrValidation       = errors.New("invalid rating")
)

// Input is one rating submission.
type Input struct {
	SwapID   uuid.UUID
	RateeID  uuid.UUID
	Score    int
	Feedback string

	Communication   int
	Punctuality     int
	SkillQuality    int
	Professionalism int
}

func validScore(n int) bool { return n >= 1 && n <= 5 }

// Validate checks the field-level rules.
func (in Input) Validate() error {
	if in.SwapID == uuid.Nil || in.RateeID == uuid.Nil {
		return ErrValidation
	}
	if !validScore(in.Score) {
		return ErrValidation
	}
	for _, n := range []int{in.Communication, in.Punctuality, in.SkillQuality, in.Professionalism} {
		if !validScore(n) {
			return ErrValidation
		}
	}
	if len(in.Feedback) > 1000 {
		return ErrValidation
	}
	return nil
}

// GuardCreate checks a rating submission against the swap it references.
func GuardCreate(swap *models.Swap, raterID, rateeID uuid.UUID) error {
	if swap.Status != models.SwapStatusCompleted {
		return ErrSwapNotCompleted
	}
	if !swap.IsParticipant(raterID) {
		return ErrNotParticipant
	}
	if swap.CounterpartyOf(raterID) != rateeID {
		return ErrInvalidRatee
	}
	return nil
}

// RoundAverage is the authoritative aggregate definition: arithmetic mean of
// all scores, rounded to one decimal. Empty input yields 0.
func RoundAverage(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, n := range scores {
		sum += n
	}
	avg := float64(sum) / float64(len(scores))
	return math.Round(avg*10) / 10
}

// RatingService owns rating writes and the ratee aggregate they imply.
type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// Create persists the rating, flags the swap as rated by the caller's side,
// and recomputes the ratee's aggregate, all in one transaction.
func (s *RatingService) Create(raterID uuid.UUID, in Input) (*models.Rating, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var swap models.Swap
	if err := s.DB.First(&swap, "id = ?", in.SwapID).Error; err != nil {
		return nil, err
	}

	if err := GuardCreate(&swap, raterID, in.RateeID); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.Model(&models.Rating{}).
		Where("swap_id = ? AND rater_id = ?", in.SwapID, raterID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateRating
	}

	rating := models.Rating{
		SwapID:          in.SwapID,
		RaterID:         raterID,
		RateeID:         in.RateeID,
		Score:           in.Score,
		Feedback:        in.Feedback,
		Communication:   in.Communication,
		Punctuality:     in.Punctuality,
		SkillQuality:    in.SkillQuality,
		Professionalism: in.Professionalism,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		ratedFlag := "is_rated_by_provider"
		if swap.RequesterID == raterID {
			ratedFlag = "is_rated_by_requester"
		}
		if err := tx.Model(&models.Swap{}).
			Where("id = ?", swap.ID).
			Update(ratedFlag, true).Error; err != nil {
			return err
		}

		return s.recomputeAggregate(tx, in.RateeID)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Update lets the original rater revise score/feedback/categories.
func (s *RatingService) Update(ratingID, callerID uuid.UUID, in Input) (*models.Rating, error) {
	var rating models.Rating
	if err := s.DB.First(&rating, "id = ?", ratingID).Error; err != nil {
		return nil, err
	}

	if rating.RaterID != callerID {
		return nil, ErrNotAuthorized
	}

	in.SwapID = rating.SwapID
	in.RateeID = rating.RateeID
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rating.Score = in.Score
	rating.Feedback = in.Feedback
	rating.Communication = in.Communication
	rating.Punctuality = in.Punctuality
	rating.SkillQuality = in.SkillQuality
	rating.Professionalism = in.Professionalism

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rating).Error; err != nil {
			return err
		}
		return s.recomputeAggregate(tx, rating.RateeID)
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete removes a rating (rater or admin) and recomputes the aggregate.
func (s *RatingService) Delete(ratingID, callerID uuid.UUID, isAdmin bool) error {
	var rating models.Rating
	if err := s.DB.First(&rating, "id = ?", ratingID).Error; err != nil {
		return err
	}

	if rating.RaterID != callerID && !isAdmin {
		return ErrNotAuthorized
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		return s.recomputeAggregate(tx, rating.RateeID)
	})
}

// recomputeAggregate rebuilds the ratee's stored {average,count} pair from all
// remaining ratings. Zero ratings resets both to 0.
func (s *RatingService) recomputeAggregate(tx *gorm.DB, rateeID uuid.UUID) error {
	var scores []int
	if err := tx.Model(&models.Rating{}).
		Where("ratee_id = ?", rateeID).
		Pluck("score", &scores).Error; err != nil {
		return err
	}

	return tx.Model(&models.User{}).
		Where("id = ?", rateeID).
		Updates(map[string]interface{}{
			"rating_average": RoundAverage(scores),
			"rating_count":   len(scores),
		}).Error
}
