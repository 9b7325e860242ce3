package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Yash-01907/odoo-timepass/internal/utils"
)

// RequireRoles gates a route to the given roles. Evaluated once per request
// against the token's role claim.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if !allowedSet[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "forbidden: insufficient role",
			})
		}

		return c.Next()
	}
}
