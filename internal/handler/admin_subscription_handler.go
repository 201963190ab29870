package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// AdminSubscriptionHandler wires subscription administration routes.
type AdminSubscriptionHandler struct {
	service     service.SubscriptionService
	development bool
	logger      zerolog.Logger
}

// NewAdminSubscriptionHandler constructs the handler.
func NewAdminSubscriptionHandler(service service.SubscriptionService, development bool, logger zerolog.Logger) *AdminSubscriptionHandler {
	return &AdminSubscriptionHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "admin_subscription_handler").Logger(),
	}
}

// Register attaches subscription endpoints to the admin router group.
func (h *AdminSubscriptionHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

func (h *AdminSubscriptionHandler) create(c *fiber.Ctx) error {
	var payload dto.SubscriptionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	subscription, err := h.service.Create(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subscription created", subscription)
}

func (h *AdminSubscriptionHandler) list(c *fiber.Ctx) error {
	filter := repository.SubscriptionFilter{Status: strings.TrimSpace(c.Query("status"))}

	if parsed, err := parseQueryInt(c, "parent_user_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid parent_user_id")
	} else if parsed > 0 {
		id := uint(parsed)
		filter.ParentUserID = &id
	}
	if parsed, err := parseQueryInt(c, "student_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid student_id")
	} else if parsed > 0 {
		id := uint(parsed)
		filter.StudentID = &id
	}

	subscriptions, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "subscriptions retrieved", subscriptions)
}
