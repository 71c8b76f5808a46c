package apperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Fiber converts err into a *fiber.Error carrying the mapped status. Errors
// outside the taxonomy pass through untouched so Handler can mask them.
func Fiber(err error) error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return err
	}
	return fiber.NewError(Status(err), appErr.Message)
}

// Handler renders every error as {"detail": message}. Unexpected errors are
// logged and reported without internal details.
func Handler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status, message = fe.Code, fe.Message
		case Status(err) != fiber.StatusInternalServerError:
			status, message = Status(err), Message(err)
		}

		if status >= fiber.StatusInternalServerError && logger != nil {
			logger.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.Any("error", err),
			)
		}
		return c.Status(status).JSON(fiber.Map{"detail": message})
	}
}
