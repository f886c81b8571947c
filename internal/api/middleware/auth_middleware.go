package middleware

import (
	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
)

type AuthMiddleware struct {
	s service.AuthService
}

func NewAuthMiddleware(s service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{s: s}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Auth-Token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if err := m.s.Validate(c.Context(), token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		return c.Next()
	}
}
