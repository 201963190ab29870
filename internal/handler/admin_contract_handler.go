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

// AdminContractHandler wires contract administration routes.
type AdminContractHandler struct {
	service     service.ContractService
	development bool
	logger      zerolog.Logger
}

// NewAdminContractHandler constructs the handler.
func NewAdminContractHandler(service service.ContractService, development bool, logger zerolog.Logger) *AdminContractHandler {
	return &AdminContractHandler{
		service:     service,
		development: development,
		logger:      logger.With().Str("component", "admin_contract_handler").Logger(),
	}
}

// Register attaches contract endpoints to the admin router group.
func (h *AdminContractHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
	router.Post("/:id/renew", h.renew)
	router.Post("/:id/adjust-hours", h.adjustHours)
}

func (h *AdminContractHandler) create(c *fiber.Ctx) error {
	var payload dto.ContractCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	contract, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "contract created", contract)
}

func (h *AdminContractHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid page_size")
	}

	filter := repository.ContractFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}

	contracts, total, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "contracts retrieved", fiber.Map{
		"contracts": contracts,
		"total":     total,
	})
}

func (h *AdminContractHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	contract, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "contract retrieved", contract)
}

func (h *AdminContractHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.ContractStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	contract, err := h.service.UpdateStatus(c.UserContext(), actorFromContext(c), id, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "contract status updated", contract)
}

func (h *AdminContractHandler) renew(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.ContractRenewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	contract, err := h.service.Renew(c.UserContext(), id, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "contract renewed", contract)
}

func (h *AdminContractHandler) adjustHours(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	var payload dto.ContractAdjustHoursRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	contract, err := h.service.AdjustPool(c.UserContext(), actorFromContext(c), id, payload)
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "remaining hours adjusted", contract)
}
