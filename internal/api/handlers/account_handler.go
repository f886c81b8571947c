package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
	"postpilot/internal/transfer"
)

type AccountHandler struct {
	s service.PlatformService
}

func NewAccountHandler(s service.PlatformService) *AccountHandler {
	return &AccountHandler{s: s}
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *AccountHandler) UpsertAccount(c *fiber.Ctx) error {
	var req transfer.AccountUpsert
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.s.Upsert(c.Context(), req.Platform, req.Connected, req.Label); err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account updated",
	})
}
