package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/greenhollow/nursery-api/internal/application/dto"
)

// internalError logs the real error and answers with a generic 500
// body. Wrapped driver/SQL detail stays in the server log; the client
// only ever sees the stable code.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}
