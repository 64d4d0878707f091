package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"server/internal/apperr"
)

// respondError maps the error taxonomy onto transport codes. Validation
// and state-transition failures carry enough field detail to fix the
// request; everything else stays generic so storage internals never leak.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "not found"})
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": apperr.MessageOf(err),
			"field":   apperr.FieldOf(err),
		})
	case apperr.KindStateTransition:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": apperr.MessageOf(err),
			"field":   apperr.FieldOf(err),
		})
	case apperr.KindAuthorization:
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": apperr.MessageOf(err)})
	case apperr.KindUpload:
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"message": "failed to store submission assets"})
	case apperr.KindPersistence:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to save application"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "internal error"})
	}
}
