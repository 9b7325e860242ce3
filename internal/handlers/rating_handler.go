package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
	"github.com/Yash-01907/odoo-timepass/internal/services/ratings"
)

type RatingHandler struct {
	DB      *gorm.DB
	Service *ratings.RatingService
}

func NewRatingHandler(db *gorm.DB, service *ratings.RatingService) *RatingHandler {
	return &RatingHandler{DB: db, Service: service}
}

type RatingRequest struct {
	SwapID   string `json:"swap_id"`
	RateeID  string `json:"ratee_id"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`

	Categories struct {
		Communication   int `json:"communication"`
		Punctuality     int `json:"punctuality"`
		SkillQuality    int `json:"skill_quality"`
		Professionalism int `json:"professionalism"`
	} `json:"categories"`
}

func ratingFail(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Not found",
		})
	case errors.Is(err, ratings.ErrNotParticipant),
		errors.Is(err, ratings.ErrNotAuthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, ratings.ErrSwapNotCompleted),
		errors.Is(err, ratings.ErrInvalidRatee),
		errors.Is(err, ratings.ErrDuplicateRating),
		errors.Is(err, ratings.ErrValidation):
		status = fiber.StatusBadRequest
	default:
		return serverError(c, "rating operation", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func (h *RatingHandler) toInput(req RatingRequest) (ratings.Input, error) {
	swapID, err := uuid.Parse(req.SwapID)
	if err != nil {
		return ratings.Input{}, ratings.ErrValidation
	}
	rateeID, err := uuid.Parse(req.RateeID)
	if err != nil {
		return ratings.Input{}, ratings.ErrValidation
	}
	return ratings.Input{
		SwapID:          swapID,
		RateeID:         rateeID,
		Score:           req.Score,
		Feedback:        req.Feedback,
		Communication:   req.Categories.Communication,
		Punctuality:     req.Categories.Punctuality,
		SkillQuality:    req.Categories.SkillQuality,
		Professionalism: req.Categories.Professionalism,
	}, nil
}

func (h *RatingHandler) Create(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	in, err := h.toInput(req)
	if err != nil {
		return ratingFail(c, err)
	}

	rating, err := h.Service.Create(uid, in)
	if err != nil {
		return ratingFail(c, err)
	}

	var full models.Rating
	if err := h.DB.
		Preload("Rater").
		Preload("Ratee").
		Preload("Swap").
		First(&full, "id = ?", rating.ID).Error; err != nil {
		return serverError(c, "reload rating", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Rating created successfully",
		"rating":  full,
	})
}

// GetUserRatings lists ratings received by a user, with aggregate stats.
func (h *RatingHandler) GetUserRatings(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	page, limit, offset := pageParams(c, 10)

	var total int64
	if err := h.DB.Model(&models.Rating{}).
		Where("ratee_id = ?", userID).
		Count(&total).Error; err != nil {
		return serverError(c, "count ratings", err)
	}

	var list []models.Rating
	if err := h.DB.
		Preload("Rater").
		Preload("Swap").
		Where("ratee_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return serverError(c, "list ratings", err)
	}

	var stats struct {
		AverageRating      float64
		TotalRatings       int64
		AvgCommunication   float64
		AvgPunctuality     float64
		AvgSkillQuality    float64
		AvgProfessionalism float64
	}
	if err := h.DB.Model(&models.Rating{}).
		Select(`
			COALESCE(AVG(score), 0) as average_rating,
			COUNT(*) as total_ratings,
			COALESCE(AVG(communication), 0) as avg_communication,
			COALESCE(AVG(punctuality), 0) as avg_punctuality,
			COALESCE(AVG(skill_quality), 0) as avg_skill_quality,
			COALESCE(AVG(professionalism), 0) as avg_professionalism
		`).
		Where("ratee_id = ?", userID).
		Scan(&stats).Error; err != nil {
		return serverError(c, "rating stats", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ratings": list,
		"stats": fiber.Map{
			"average_rating":      stats.AverageRating,
			"total_ratings":       stats.TotalRatings,
			"avg_communication":   stats.AvgCommunication,
			"avg_punctuality":     stats.AvgPunctuality,
			"avg_skill_quality":   stats.AvgSkillQuality,
			"avg_professionalism": stats.AvgProfessionalism,
		},
		"pagination": pagination(page, limit, total),
	})
}

func (h *RatingHandler) GetSwapRatings(c *fiber.Ctx) error {
	swapID, err := uuid.Parse(c.Params("swapId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid swap ID",
		})
	}

	var list []models.Rating
	if err := h.DB.
		Preload("Rater").
		Preload("Ratee").
		Where("swap_id = ?", swapID).
		Find(&list).Error; err != nil {
		return serverError(c, "swap ratings", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"ratings": list,
	})
}

func (h *RatingHandler) Update(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	ratingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid rating ID",
		})
	}

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	rating, err := h.Service.Update(ratingID, uid, ratings.Input{
		Score:           req.Score,
		Feedback:        req.Feedback,
		Communication:   req.Categories.Communication,
		Punctuality:     req.Categories.Punctuality,
		SkillQuality:    req.Categories.SkillQuality,
		Professionalism: req.Categories.Professionalism,
	})
	if err != nil {
		return ratingFail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Rating updated successfully",
		"rating":  rating,
	})
}

func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	ratingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid rating ID",
		})
	}

	if err := h.Service.Delete(ratingID, uid, isAdmin(role)); err != nil {
		return ratingFail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Rating deleted successfully",
	})
}
