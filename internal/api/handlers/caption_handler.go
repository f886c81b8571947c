package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
	"postpilot/internal/transfer"
)

type CaptionHandler struct {
	s service.CaptionService
}

func NewCaptionHandler(s service.CaptionService) *CaptionHandler {
	return &CaptionHandler{s: s}
}

func (h *CaptionHandler) GenerateCaption(c *fiber.Ctx) error {
	var req transfer.CaptionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	result, err := h.s.Generate(c.Context(), req.Topic, req.Tone)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
