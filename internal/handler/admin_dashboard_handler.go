package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/repository"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// AdminDashboardHandler wires the admin summary, reports, and audit trail.
type AdminDashboardHandler struct {
	dashboard   service.AdminDashboardService
	audit       service.AuditService
	development bool
	logger      zerolog.Logger
}

// NewAdminDashboardHandler constructs the handler.
func NewAdminDashboardHandler(dashboard service.AdminDashboardService, audit service.AuditService, development bool, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		dashboard:   dashboard,
		audit:       audit,
		development: development,
		logger:      logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the admin router group.
func (h *AdminDashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.summary)
	router.Get("/reports/revenue", h.revenue)
	router.Get("/audit-log", h.auditLog)
}

func (h *AdminDashboardHandler) summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext())
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "dashboard summary retrieved", summary)
}

func (h *AdminDashboardHandler) revenue(c *fiber.Ctx) error {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "from and to query parameters are required")
	}

	report, err := h.dashboard.RevenueReport(c.UserContext(), from, to)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "revenue report generated", report)
}

func (h *AdminDashboardHandler) auditLog(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid page_size")
	}

	filter := repository.AuditLogFilter{
		Action:   strings.TrimSpace(c.Query("action")),
		Page:     page,
		PageSize: pageSize,
	}

	entries, total, err := h.audit.List(c.UserContext(), filter)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "audit log retrieved", fiber.Map{
		"entries": entries,
		"total":   total,
	})
}
