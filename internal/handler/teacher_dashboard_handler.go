package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// TeacherDashboardHandler wires the teacher's day and week views.
type TeacherDashboardHandler struct {
	service     service.TeacherDashboardService
	development bool
	logger      zerolog.Logger
}

// NewTeacherDashboardHandler constructs the handler.
func NewTeacherDashboardHandler(service service.TeacherDashboardService, development bool, logger zerolog.Logger) *TeacherDashboardHandler {
	return &TeacherDashboardHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "teacher_dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the teacher router group.
func (h *TeacherDashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/sessions/today", h.todaySessions)
	router.Get("/calendar/week", h.weekCalendar)
}

func (h *TeacherDashboardHandler) dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *TeacherDashboardHandler) todaySessions(c *fiber.Ctx) error {
	sessions, err := h.service.TodaySessions(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "today's sessions retrieved", sessions)
}

func (h *TeacherDashboardHandler) weekCalendar(c *fiber.Ctx) error {
	calendar, err := h.service.WeekCalendar(c.UserContext(), userIDFromContext(c), c.Query("weekStart"))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "week calendar retrieved", calendar)
}
