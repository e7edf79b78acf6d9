package middlewares

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"flowaid_backend/internals/configs"
)

// IdentityMiddleware membaca session token (JWT dari identity provider eksternal)
// kalau ada, lalu simpan user_id & user_email di Locals. Request tanpa token
// tetap lolos — donasi anonim tidak butuh login.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Webhook payment gateway bisa datang dengan Authorization milik
		// gateway sendiri — jalur ini tidak boleh pernah dibalas 401,
		// kontraknya selalu ack 200
		if c.Method() == fiber.MethodPost && c.Path() == "/api/donations/webhook" {
			return c.Next()
		}

		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		}
		if raw == "" {
			return c.Next()
		}

		secret := configs.JWTSecret
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong, identitas di-skip")
			return c.Next()
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals("jwt_claims", claims)
		if v, ok := claims["id"].(string); ok && v != "" {
			c.Locals("user_id", v)
		} else if v, ok := claims["sub"].(string); ok && v != "" {
			c.Locals("user_id", v)
		}
		if v, ok := claims["email"].(string); ok && v != "" {
			c.Locals("user_email", v)
		}
		if v, ok := claims["role"].(string); ok && v != "" {
			c.Locals("user_role", v)
		}

		return c.Next()
	}
}
