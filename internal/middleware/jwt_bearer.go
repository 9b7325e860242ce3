package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Yash-01907/odoo-timepass/internal/utils"
)

// JWTFromHeader reads a bearer token from the Authorization header and stores
// the parsed claims in locals.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Missing or invalid token",
			})
		}

		claims, err := utils.ParseJWT(secret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Missing or invalid token",
			})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
