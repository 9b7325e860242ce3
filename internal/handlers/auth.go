package handlers

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
	"github.com/Yash-01907/odoo-timepass/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location"`
}

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if len(name) < 2 || len(name) > 50 {
		errs.Add("name", "Name must be between 2 and 50 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs.Add("email", "Please provide a valid email")
	}
	if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "User already exists with this email",
		})
	} else if err != gorm.ErrRecordNotFound {
		return serverError(c, "register lookup", err)
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return serverError(c, "hash password", err)
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Password:     pw,
		Role:         models.RoleUser,
		Location:     strings.TrimSpace(req.Location),
		Availability: datatypes.JSON([]byte(`["flexible"]`)),
		IsPublic:     true,
		LastActive:   time.Now(),
	}

	if err := h.DB.Create(&u).Error; err != nil {
		return serverError(c, "create user", err)
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c, "sign token", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user": fiber.Map{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"role":      u.Role,
			"location":  u.Location,
			"is_public": u.IsPublic,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and password are required",
		})
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	if u.IsBanned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success":    false,
			"message":    "Account has been banned",
			"ban_reason": u.BanReason,
		})
	}

	if !utils.CheckPassword(u.Password, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	_ = h.DB.Model(&models.User{}).
		Where("id = ?", u.ID).
		Update("last_active", time.Now()).Error

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c, "sign token", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"role":          u.Role,
			"location":      u.Location,
			"is_public":     u.IsPublic,
			"profile_photo": u.ProfilePhoto,
		},
	})
}

// Logout is a no-op for bearer tokens; the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	var u models.User
	if err := h.DB.
		Preload("SkillsOffered").
		Preload("SkillsWanted").
		First(&u, "id = ?", uid).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    u,
	})
}

type UpdateProfileReq struct {
	Name         *string  `json:"name"`
	Location     *string  `json:"location"`
	ProfilePhoto *string  `json:"profile_photo"`
	Availability []string `json:"availability"`
	IsPublic     *bool    `json:"is_public"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
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
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 || len(name) > 50 {
			errs := FieldErrors{}
			errs.Add("name", "Name must be between 2 and 50 characters")
			return validationFail(c, errs)
		}
		updates["name"] = name
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
			Where("id = ?", uid).
			Updates(updates).Error; err != nil {
			return serverError(c, "update profile", err)
		}
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return serverError(c, "reload profile", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}

func availabilityJSON(flags []string) (datatypes.JSON, error) {
	b, err := json.Marshal(flags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func serverError(c *fiber.Ctx, op string, err error) error {
	log.Printf("Error (%s): %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Server error",
	})
}
