package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// AttendanceHandler wires the teacher-facing check-in/check-out routes.
type AttendanceHandler struct {
	service     service.AttendanceService
	development bool
	logger      zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, development bool, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance endpoints to the teacher router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/check-in", h.checkIn)
	router.Post("/check-out", h.checkOut)
	router.Post("/check-in/group", h.checkInGroup)
	router.Post("/check-out/group", h.checkOutGroup)
	router.Patch("/sessions/:id/status", h.markStatus)
}

func (h *AttendanceHandler) checkIn(c *fiber.Ctx) error {
	var payload dto.CheckInRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.CheckIn(c.UserContext(), userIDFromContext(c), payload.ContractID)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session started", result)
}

func (h *AttendanceHandler) checkOut(c *fiber.Ctx) error {
	var payload dto.CheckOutRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.CheckOut(c.UserContext(), userIDFromContext(c), payload.SessionID, payload.LessonNotes)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "session completed", result)
}

func (h *AttendanceHandler) checkInGroup(c *fiber.Ctx) error {
	var payload dto.GroupCheckInRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.CheckInGroup(c.UserContext(), userIDFromContext(c), payload.GroupClassID)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "group session started", result)
}

func (h *AttendanceHandler) checkOutGroup(c *fiber.Ctx) error {
	var payload dto.GroupCheckOutRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.CheckOutGroup(c.UserContext(), userIDFromContext(c), payload.GroupSessionID, payload.LessonNotes)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "group session completed", result)
}

func (h *AttendanceHandler) markStatus(c *fiber.Ctx) error {
	logID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.SessionStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.MarkSessionStatus(c.UserContext(), userIDFromContext(c), logID, payload.Status)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "session status updated", result)
}

// AdminAttendanceHandler wires the admin override routes.
type AdminAttendanceHandler struct {
	service     service.AttendanceService
	development bool
	logger      zerolog.Logger
}

// NewAdminAttendanceHandler constructs the handler.
func NewAdminAttendanceHandler(service service.AttendanceService, development bool, logger zerolog.Logger) *AdminAttendanceHandler {
	return &AdminAttendanceHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "admin_attendance_handler").Logger(),
	}
}

// Register attaches override endpoints to the admin router group.
func (h *AdminAttendanceHandler) Register(router fiber.Router) {
	router.Post("/:id/adjust-hours", h.adjustHours)
	router.Post("/:id/override-times", h.overrideTimes)
}

func (h *AdminAttendanceHandler) adjustHours(c *fiber.Ctx) error {
	logID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.AdjustHoursRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	result, err := h.service.AdjustHours(c.UserContext(), actorFromContext(c), logID, payload.Hours, payload.Reason)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "hours adjusted", result)
}

func (h *AdminAttendanceHandler) overrideTimes(c *fiber.Ctx) error {
	logID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.OverrideTimesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if payload.CheckInTime == nil && payload.CheckOutTime == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "at least one of check_in_time or check_out_time is required")
	}

	checkIn, err := parseOptionalTime(payload.CheckInTime)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid check_in_time")
	}
	checkOut, err := parseOptionalTime(payload.CheckOutTime)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid check_out_time")
	}

	result, err := h.service.OverrideTimes(c.UserContext(), actorFromContext(c), logID, checkIn, checkOut, payload.Reason)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "times overridden", result)
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
