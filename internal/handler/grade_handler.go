package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// GradeHandler wires the teacher-facing grade routes.
type GradeHandler struct {
	service     service.GradeService
	development bool
	logger      zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service service.GradeService, development bool, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches grade endpoints to the teacher router group.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Post("", h.record)
	router.Get("", h.list)
}

func (h *GradeHandler) record(c *fiber.Ctx) error {
	var payload dto.GradeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	grade, err := h.service.Record(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade recorded", grade)
}

func (h *GradeHandler) list(c *fiber.Ctx) error {
	var studentID *uint
	if parsed, err := parseQueryInt(c, "student_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid student_id")
	} else if parsed > 0 {
		id := uint(parsed)
		studentID = &id
	}

	grades, err := h.service.ListForTeacher(c.UserContext(), userIDFromContext(c), studentID)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}
