package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// NotificationHandler wires the notification routes shared by all roles.
type NotificationHandler struct {
	service     service.NotificationService
	development bool
	logger      zerolog.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service service.NotificationService, development bool, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register attaches notification endpoints to the authenticated router group.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Patch("/:id/read", h.markRead)
	router.Post("/mark-all-read", h.markAllRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unreadOnly")

	views, err := h.service.List(c.UserContext(), userIDFromContext(c), userRoleFromContext(c), unreadOnly)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "notifications retrieved", views)
}

// markRead accepts negative identifiers: derived notifications no-op with
// success instead of failing.
func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	wireID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid identifier")
	}

	result, err := h.service.MarkRead(c.UserContext(), userIDFromContext(c), wireID)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, result.Message, result)
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	updated, err := h.service.MarkAllRead(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "notifications marked as read", fiber.Map{"updated": updated})
}
