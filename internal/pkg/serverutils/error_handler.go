package serverutils

import (
	"errors"

	"communal-canon-be/internal/pkg/apperror"
	"communal-canon-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service errors into the JSON error
// envelope. AppError kinds map to HTTP statuses; anything else is a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ae *apperror.AppError
		if errors.As(err, &ae) {
			status := statusForKind(ae.Kind)
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  ae.Code,
					"error": ae.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(ae.Code, ae.Message))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse("", fe.Message))
		}

		log.Error("HTTP", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("INTERNAL", "internal server error"))
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindExternal:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
