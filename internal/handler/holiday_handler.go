package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/dto"
	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// HolidayHandler wires holiday management and lookup routes.
type HolidayHandler struct {
	service     service.HolidayService
	development bool
	logger      zerolog.Logger
}

// NewHolidayHandler constructs the handler.
func NewHolidayHandler(service service.HolidayService, development bool, logger zerolog.Logger) *HolidayHandler {
	return &HolidayHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "holiday_handler").Logger(),
	}
}

// RegisterAdmin attaches the write endpoints to the admin router group.
func (h *HolidayHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

// RegisterPublic attaches the lookup endpoint for any authenticated caller.
func (h *HolidayHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.listByYear)
}

func (h *HolidayHandler) create(c *fiber.Ctx) error {
	var payload dto.HolidayCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	holiday, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "holiday created", holiday)
}

func (h *HolidayHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "holiday deleted", fiber.Map{"id": id})
}

func (h *HolidayHandler) listByYear(c *fiber.Ctx) error {
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid year")
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	holidays, err := h.service.ListByYear(c.UserContext(), year)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "holidays retrieved", holidays)
}
