package handlers

import (
	"errors"
	"log"

	"bjjtracker/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber.Config ErrorHandler: it maps error kinds to
// status codes and writes the JSON error body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	var fiberErr *fiber.Error
	body := fiber.Map{}
	status := statusFor(err)

	switch {
	case errors.As(err, &appErr):
		body["message"] = appErr.Message
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		if appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	default:
		body["message"] = "Server error"
		body["error"] = err.Error()
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrAuth):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrRateLimited):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// parseBody decodes the JSON request body into out.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &apperr.Error{Kind: apperr.ErrValidation, Message: "Invalid request body", Err: err}
	}
	return nil
}
