package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// HomeworkHandler wires the teacher-facing homework routes.
type HomeworkHandler struct {
	service     service.HomeworkService
	development bool
	logger      zerolog.Logger
}

// NewHomeworkHandler constructs the handler.
func NewHomeworkHandler(service service.HomeworkService, development bool, logger zerolog.Logger) *HomeworkHandler {
	return &HomeworkHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "homework_handler").Logger(),
	}
}

// Register attaches homework endpoints to the teacher router group.
func (h *HomeworkHandler) Register(router fiber.Router) {
	router.Post("", h.assign)
	router.Get("", h.list)
	router.Patch("/:id/status", h.updateStatus)
}

func (h *HomeworkHandler) assign(c *fiber.Ctx) error {
	var payload dto.HomeworkCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	homework, err := h.service.Assign(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "homework assigned", homework)
}

func (h *HomeworkHandler) list(c *fiber.Ctx) error {
	var studentID, contractID *uint
	if parsed, err := parseQueryInt(c, "student_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid student_id")
	} else if parsed > 0 {
		id := uint(parsed)
		studentID = &id
	}
	if parsed, err := parseQueryInt(c, "contract_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid contract_id")
	} else if parsed > 0 {
		id := uint(parsed)
		contractID = &id
	}

	items, err := h.service.ListForTeacher(c.UserContext(), userIDFromContext(c), studentID, contractID)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "homework retrieved", items)
}

func (h *HomeworkHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.HomeworkStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	homework, err := h.service.UpdateStatus(c.UserContext(), userIDFromContext(c), id, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "homework status updated", homework)
}
