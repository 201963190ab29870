package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// AdminTeacherHandler wires teacher onboarding administration routes.
type AdminTeacherHandler struct {
	service     service.UserService
	development bool
	logger      zerolog.Logger
}

// NewAdminTeacherHandler constructs the handler.
func NewAdminTeacherHandler(service service.UserService, development bool, logger zerolog.Logger) *AdminTeacherHandler {
	return &AdminTeacherHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "admin_teacher_handler").Logger(),
	}
}

// Register attaches teacher endpoints to the admin router group.
func (h *AdminTeacherHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Get("", h.list)
	router.Patch("/:id/approve", h.approve)
}

func (h *AdminTeacherHandler) register(c *fiber.Ctx) error {
	var payload dto.TeacherRegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	teacher, err := h.service.RegisterTeacher(c.UserContext(), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher profile registered", teacher)
}

func (h *AdminTeacherHandler) list(c *fiber.Ctx) error {
	teachers, err := h.service.ListTeachers(c.UserContext())
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *AdminTeacherHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	teacher, err := h.service.ApproveTeacher(c.UserContext(), actorFromContext(c), id)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "teacher approved", teacher)
}
