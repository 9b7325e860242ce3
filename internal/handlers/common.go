package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

// getAuth pulls the authenticated user id and role out of locals.
func getAuth(c *fiber.Ctx) (uuid.UUID, string, error) {
	raw, ok := c.Locals("userId").(string)
	if !ok || raw == "" {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", fiber.ErrUnauthorized
	}
	role, _ := c.Locals("role").(string)
	return uid, role, nil
}

func isAdmin(role string) bool {
	return role == string(models.RoleAdmin)
}

func pagination(page, limit int, total int64) fiber.Map {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return fiber.Map{
		"current": page,
		"pages":   pages,
		"total":   total,
	}
}

func pageParams(c *fiber.Ctx, defLimit int) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", defLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defLimit
	}
	return page, limit, (page - 1) * limit
}

// UserMini is the compact user shape embedded in swap/rating responses.
type UserMini struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ProfilePhoto  string  `json:"profile_photo,omitempty"`
	Location      string  `json:"location,omitempty"`
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int64   `json:"rating_count"`
}

func toUserMini(u *models.User) *UserMini {
	if u == nil {
		return nil
	}
	return &UserMini{
		ID:            u.ID.String(),
		Name:          u.Name,
		ProfilePhoto:  u.ProfilePhoto,
		Location:      u.Location,
		RatingAverage: u.RatingAverage,
		RatingCount:   u.RatingCount,
	}
}
