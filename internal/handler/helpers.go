package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/middleware"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
		if id, ok := v.(int); ok {
			if id < 0 {
				return 0
			}
			return uint(id)
		}
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:   userIDFromContext(c),
		Role: userRoleFromContext(c),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// handleServiceError maps service-layer failures onto the HTTP error
// contract. Unknown errors become a 500 with the message redacted outside
// development.
func handleServiceError(c *fiber.Ctx, logger zerolog.Logger, err error, development bool) error {
	var business *service.BusinessError
	var notFound *service.NotFoundError
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &business):
		return utils.SendError(c, fiber.StatusBadRequest, business.Code, business.Message)
	case errors.As(err, &notFound):
		return utils.SendError(c, fiber.StatusNotFound, "NOT_FOUND", notFound.Error())
	case errors.As(err, &validationErrors):
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", validationDetails(validationErrors))
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		message := "internal server error"
		if development {
			message = err.Error()
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "INTERNAL", message)
	}
}

func validationDetails(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		details = append(details, fmt.Sprintf("%s failed on %s", fieldError.Field(), fieldError.Tag()))
	}
	return details
}
