package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// ListPublic returns browsable profiles: public, unbanned, optionally filtered
// by name/skill text, skill category, or location.
func (h *UserHandler) ListPublic(c *fiber.Ctx) error {
	search := strings.TrimSpace(c.Query("search"))
	category := c.Query("category")
	location := strings.TrimSpace(c.Query("location"))
	page, limit, offset := pageParams(c, 10)

	q := h.DB.Model(&models.User{}).
		Where("is_public = ? AND is_banned = ?", true, false)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(`LOWER(name) LIKE ? OR EXISTS (
			SELECT 1 FROM skills_offered so
			WHERE so.user_id = users.id AND so.is_approved = true
			AND (LOWER(so.name) LIKE ? OR LOWER(so.description) LIKE ?))`,
			like, like, like)
	}
	if category != "" {
		q = q.Where(`EXISTS (
			SELECT 1 FROM skills_offered so
			WHERE so.user_id = users.id AND so.is_approved = true AND so.category = ?)`,
			category)
	}
	if location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count users", err)
	}

	var users []models.User
	if err := q.
		Preload("SkillsOffered", "is_approved = ?", true).
		Preload("SkillsWanted").
		Order("last_active DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return serverError(c, "list users", err)
	}

	// browse responses never carry emails
	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		out = append(out, publicUserMap(&users[i]))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"users":      out,
		"pagination": pagination(page, limit, total),
	})
}

func publicUserMap(u *models.User) fiber.Map {
	return fiber.Map{
		"id":              u.ID,
		"name":            u.Name,
		"location":        u.Location,
		"profile_photo":   u.ProfilePhoto,
		"availability":    u.Availability,
		"is_public":       u.IsPublic,
		"rating_average":  u.RatingAverage,
		"rating_count":    u.RatingCount,
		"completed_swaps": u.CompletedSwaps,
		"last_active":     u.LastActive,
		"skills_offered":  u.SkillsOffered,
		"skills_wanted":   u.SkillsWanted,
	}
}

func (h *UserHandler) GetDetail(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var u models.User
	if err := h.DB.
		Preload("SkillsOffered").
		Preload("SkillsWanted").
		First(&u, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if !u.IsPublic && u.ID != uid && !isAdmin(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "This profile is private",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    publicUserMap(&u),
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	if targetID != uid && !isAdmin(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to update this profile",
		})
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.ProfilePhoto != nil {
		updates["profile_photo"] = *req.ProfilePhoto
	}
	if req.Availability != nil {
		b, err := availabilityJSON(req.Availability)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid availability",
			})
		}
		updates["availability"] = b
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&models.User{}).
			Where("id = ?", targetID).
			Updates(updates).Error; err != nil {
			return serverError(c, "update user", err)
		}
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    u,
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	if targetID != uid && !isAdmin(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to delete this profile",
		})
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", targetID).Error; err != nil {
		return serverError(c, "delete user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *UserHandler) GetSkills(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var u models.User
	if err := h.DB.
		Preload("SkillsOffered").
		Preload("SkillsWanted").
		First(&u, "id = ?", targetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"skills": fiber.Map{
			"offered": u.SkillsOffered,
			"wanted":  u.SkillsWanted,
		},
	})
}

type SkillReq struct {
	Type            string `json:"type"` // offered | wanted
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	ExperienceLevel string `json:"experience_level"` // offered only
	Urgency         string `json:"urgency"`          // wanted only
}

func (r *SkillReq) validateCommon() FieldErrors {
	errs := FieldErrors{}
	name := strings.TrimSpace(r.Name)
	if len(name) < 2 || len(name) > 100 {
		errs.Add("name", "Skill name must be between 2 and 100 characters")
	}
	desc := strings.TrimSpace(r.Description)
	if len(desc) < 10 || len(desc) > 500 {
		errs.Add("description", "Description must be between 10 and 500 characters")
	}
	if !models.ValidCategory(models.SkillCategory(r.Category)) {
		errs.Add("category", "Invalid category")
	}
	return errs
}

// AddSkill adds an offered or wanted skill to the caller's own profile.
// Offered skills start unapproved and wait for moderation.
func (h *UserHandler) AddSkill(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil || targetID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to add skills to this profile",
		})
	}

	var req SkillReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errs := req.validateCommon()

	switch req.Type {
	case "offered":
		if !models.ValidExperienceLevel(models.ExperienceLevel(req.ExperienceLevel)) {
			errs.Add("experience_level", "Invalid experience level")
		}
		if len(errs) > 0 {
			return validationFail(c, errs)
		}
		skill := models.SkillOffered{
			UserID:          uid,
			Name:            strings.TrimSpace(req.Name),
			Description:     strings.TrimSpace(req.Description),
			Category:        models.SkillCategory(req.Category),
			ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
			IsApproved:      false,
		}
		if err := h.DB.Create(&skill).Error; err != nil {
			return serverError(c, "add offered skill", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Skill added successfully",
			"skill":   skill,
		})

	case "wanted":
		urgency := models.Urgency(req.Urgency)
		if urgency == "" {
			urgency = models.UrgencyMedium
		}
		if !models.ValidUrgency(urgency) {
			errs.Add("urgency", "Invalid urgency")
		}
		if len(errs) > 0 {
			return validationFail(c, errs)
		}
		skill := models.SkillWanted{
			UserID:      uid,
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Category:    models.SkillCategory(req.Category),
			Urgency:     urgency,
		}
		if err := h.DB.Create(&skill).Error; err != nil {
			return serverError(c, "add wanted skill", err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Skill added successfully",
			"skill":   skill,
		})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid skill type",
	})
}

// UpdateSkill edits one of the caller's skills. Editing an offered skill
// resets its approval so it goes through moderation again.
func (h *UserHandler) UpdateSkill(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil || targetID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to update skills for this profile",
		})
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}

	var req SkillReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errs := req.validateCommon()

	switch req.Type {
	case "offered":
		if !models.ValidExperienceLevel(models.ExperienceLevel(req.ExperienceLevel)) {
			errs.Add("experience_level", "Invalid experience level")
		}
		if len(errs) > 0 {
			return validationFail(c, errs)
		}
		var skill models.SkillOffered
		if err := h.DB.First(&skill, "id = ? AND user_id = ?", skillID, uid).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Skill not found",
			})
		}
		skill.Name = strings.TrimSpace(req.Name)
		skill.Description = strings.TrimSpace(req.Description)
		skill.Category = models.SkillCategory(req.Category)
		skill.ExperienceLevel = models.ExperienceLevel(req.ExperienceLevel)
		skill.IsApproved = false
		skill.RejectionReason = ""
		if err := h.DB.Save(&skill).Error; err != nil {
			return serverError(c, "update offered skill", err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Skill updated successfully",
			"skill":   skill,
		})

	case "wanted":
		urgency := models.Urgency(req.Urgency)
		if urgency == "" {
			urgency = models.UrgencyMedium
		}
		if !models.ValidUrgency(urgency) {
			errs.Add("urgency", "Invalid urgency")
		}
		if len(errs) > 0 {
			return validationFail(c, errs)
		}
		var skill models.SkillWanted
		if err := h.DB.First(&skill, "id = ? AND user_id = ?", skillID, uid).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Skill not found",
			})
		}
		skill.Name = strings.TrimSpace(req.Name)
		skill.Description = strings.TrimSpace(req.Description)
		skill.Category = models.SkillCategory(req.Category)
		skill.Urgency = urgency
		if err := h.DB.Save(&skill).Error; err != nil {
			return serverError(c, "update wanted skill", err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Skill updated successfully",
			"skill":   skill,
		})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid skill type",
	})
}

func (h *UserHandler) DeleteSkill(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil || targetID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to delete skills from this profile",
		})
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}

	var res *gorm.DB
	switch c.Query("type") {
	case "offered":
		res = h.DB.Delete(&models.SkillOffered{}, "id = ? AND user_id = ?", skillID, uid)
	case "wanted":
		res = h.DB.Delete(&models.SkillWanted{}, "id = ? AND user_id = ?", skillID, uid)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill type",
		})
	}

	if res.Error != nil {
		return serverError(c, "delete skill", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Skill not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Skill deleted successfully",
	})
}
