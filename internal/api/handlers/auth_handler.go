package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
	"postpilot/internal/transfer"
)

type AuthHandler struct {
	s service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{s: s}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	token, err := h.s.Login(c.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid password",
			})
		case errors.Is(err, service.ErrAuthNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server auth not configured",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Login failed",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Get("X-Auth-Token")
	if err := h.s.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to log out",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
