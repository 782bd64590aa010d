package serverutils

import (
	"errors"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	var verr *apperror.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidCredentials), errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrConcurrency):
		return fiber.StatusConflict
	case errors.As(err, &ferr):
		return ferr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is installed as the fiber.Config ErrorHandler.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFor(err)

		var verr *apperror.ValidationError
		if errors.As(err, &verr) {
			res := BaseResponse[[]apperror.FieldFailure]{
				Success: false,
				Code:    code,
				Message: "Validation failed",
				Data:    verr.Failures,
			}
			return ctx.Status(code).JSON(res)
		}

		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
			message = "Internal server error"
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
