package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-legalchat-be/internal/pkg/logger"
	"ai-legalchat-be/pkg/llm"
)

// ErrorResponse is the client-facing error payload for every failure class.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandlerMiddleware maps pipeline errors to HTTP responses:
// AppError keeps its code, ModelServiceError becomes a 500 with the
// downstream detail surfaced, anything else becomes an opaque 500 with
// the cause logged for operators. No error is fatal to the process.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return c.Status(appErr.Code).JSON(ErrorResponse{Error: appErr.Message})
		}

		var modelErr *llm.ModelServiceError
		if errors.As(err, &modelErr) {
			log.Error("http", "model service call failed", map[string]interface{}{
				"path":  c.Path(),
				"error": modelErr.Error(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: modelErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  c.Path(),
			"error": err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal server error"})
	}
}

// RequestLoggerMiddleware emits one structured access log line per request.
func RequestLoggerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		log.Info("http", "request handled", map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"status": c.Response().StatusCode(),
			"ip":     c.IP(),
		})
		return err
	}
}
