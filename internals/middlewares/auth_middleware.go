package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAuth: endpoint hanya untuk caller ter-autentikasi. Identitas
// diisi IdentityMiddleware; tanpa user_id di Locals = 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// RequireRole: hanya role tertentu (mis. "admin") yang boleh lewat.
// Role dibaca dari claim token yang sudah dihydrate IdentityMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		role, _ := c.Locals("user_role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Akses ditolak",
		})
	}
}
