package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
)

// statusFromError maps service errors to HTTP statuses: validation 400,
// missing record 404, non-pending record 409, everything else 500.
func statusFromError(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrPostNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrPostNotEditable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
