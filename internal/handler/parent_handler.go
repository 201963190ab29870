package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edulane/edulane-api/internal/service"
	"github.com/edulane/edulane-api/internal/utils"
)

// ParentHandler wires the parent portal's read-only routes.
type ParentHandler struct {
	users         service.UserService
	contracts     service.ContractService
	subscriptions service.SubscriptionService
	homework      service.HomeworkService
	grades        service.GradeService
	development   bool
	logger        zerolog.Logger
}

// NewParentHandler constructs the handler.
func NewParentHandler(
	users service.UserService,
	contracts service.ContractService,
	subscriptions service.SubscriptionService,
	homework service.HomeworkService,
	grades service.GradeService,
	development bool,
	logger zerolog.Logger,
) *ParentHandler {
	return &ParentHandler{
		users:         users,
		contracts:     contracts,
		subscriptions: subscriptions,
		homework:      homework,
		grades:        grades,
		development:   development,
		logger:        logger.With().Str("component", "parent_handler").Logger(),
	}
}

// Register attaches parent endpoints to the parent router group.
func (h *ParentHandler) Register(router fiber.Router) {
	router.Get("/children", h.children)
	router.Get("/contracts", h.contractList)
	router.Get("/subscriptions", h.subscriptionList)
	router.Get("/homework", h.homeworkList)
	router.Get("/grades", h.gradeList)
}

func (h *ParentHandler) children(c *fiber.Ctx) error {
	children, err := h.users.ListChildren(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "children retrieved", children)
}

func (h *ParentHandler) contractList(c *fiber.Ctx) error {
	contracts, err := h.contracts.ListForParent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "contracts retrieved", contracts)
}

func (h *ParentHandler) subscriptionList(c *fiber.Ctx) error {
	subscriptions, err := h.subscriptions.ListForParent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "subscriptions retrieved", subscriptions)
}

func (h *ParentHandler) homeworkList(c *fiber.Ctx) error {
	items, err := h.homework.ListForParent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "homework retrieved", items)
}

func (h *ParentHandler) gradeList(c *fiber.Ctx) error {
	grades, err := h.grades.ListForParent(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return handleServiceError(c, h.logger, err, h.development)
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}
