package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

type SkillHandler struct {
	DB *gorm.DB
}

func NewSkillHandler(db *gorm.DB) *SkillHandler {
	return &SkillHandler{DB: db}
}

// Search lists approved skills of public, unbanned users, one row per skill.
func (h *SkillHandler) Search(c *fiber.Ctx) error {
	type Result struct {
		UserID         uuid.UUID
		UserName       string
		Location       string
		ProfilePhoto   string
		RatingAverage  float64
		RatingCount    int64
		CompletedSwaps int64
		LastActive     time.Time

		SkillID         uuid.UUID
		Name            string
		Description     string
		Category        models.SkillCategory
		ExperienceLevel models.ExperienceLevel
	}

	qSearch := strings.TrimSpace(c.Query("q"))
	category := c.Query("category")
	level := c.Query("experience_level")
	page, limit, offset := pageParams(c, 20)

	q := h.DB.
		Table("skills_offered").
		Select(`
			users.id as user_id,
			users.name as user_name,
			users.location,
			users.profile_photo,
			users.rating_average,
			users.rating_count,
			users.completed_swaps,
			users.last_active,
			skills_offered.id as skill_id,
			skills_offered.name,
			skills_offered.description,
			skills_offered.category,
			skills_offered.experience_level
		`).
		Joins("JOIN users ON users.id = skills_offered.user_id").
		Where("skills_offered.is_approved = ?", true).
		Where("users.is_public = ? AND users.is_banned = ?", true, false)

	if qSearch != "" {
		like := "%" + strings.ToLower(qSearch) + "%"
		q = q.Where("LOWER(skills_offered.name) LIKE ? OR LOWER(skills_offered.description) LIKE ?", like, like)
	}
	if category != "" {
		q = q.Where("skills_offered.category = ?", category)
	}
	if level != "" {
		q = q.Where("skills_offered.experience_level = ?", level)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return serverError(c, "count skills", err)
	}

	var rows []Result
	if err := q.
		Order("users.last_active DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return serverError(c, "search skills", err)
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"user": fiber.Map{
				"id":              r.UserID,
				"name":            r.UserName,
				"location":        r.Location,
				"profile_photo":   r.ProfilePhoto,
				"rating_average":  r.RatingAverage,
				"rating_count":    r.RatingCount,
				"completed_swaps": r.CompletedSwaps,
				"last_active":     r.LastActive,
			},
			"skill": fiber.Map{
				"id":               r.SkillID,
				"name":             r.Name,
				"description":      r.Description,
				"category":         r.Category,
				"experience_level": r.ExperienceLevel,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"skills":     out,
		"pagination": pagination(page, limit, total),
	})
}

// Categories returns the closed category set with approved-skill counts.
func (h *SkillHandler) Categories(c *fiber.Ctx) error {
	type row struct {
		Category models.SkillCategory
		Count    int64
	}

	var rows []row
	if err := h.DB.
		Table("skills_offered").
		Select("skills_offered.category, COUNT(*) as count").
		Joins("JOIN users ON users.id = skills_offered.user_id").
		Where("skills_offered.is_approved = ?", true).
		Where("users.is_public = ? AND users.is_banned = ?", true, false).
		Group("skills_offered.category").
		Scan(&rows).Error; err != nil {
		return serverError(c, "count categories", err)
	}

	counts := map[models.SkillCategory]int64{}
	for _, r := range rows {
		counts[r.Category] = r.Count
	}

	out := make([]fiber.Map, 0, len(models.SkillCategories))
	for _, cat := range models.SkillCategories {
		out = append(out, fiber.Map{
			"name":  cat,
			"count": counts[cat],
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": out,
	})
}

// Popular returns the ten most-offered approved skill names.
func (h *SkillHandler) Popular(c *fiber.Ctx) error {
	type row struct {
		Name     string
		Category models.SkillCategory
		Count    int64
	}

	var rows []row
	if err := h.DB.
		Table("skills_offered").
		Select("skills_offered.name, MIN(skills_offered.category) as category, COUNT(*) as count").
		Joins("JOIN users ON users.id = skills_offered.user_id").
		Where("skills_offered.is_approved = ?", true).
		Where("users.is_public = ? AND users.is_banned = ?", true, false).
		Group("skills_offered.name").
		Order("count DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		return serverError(c, "popular skills", err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"popular_skills": rows,
	})
}
