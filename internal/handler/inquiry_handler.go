package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// InquiryHandler handles the public contact form submission.
type InquiryHandler struct {
	service service.InquiryService
	logger  zerolog.Logger
}

// NewInquiryHandler constructs the public inquiry handler.
func NewInquiryHandler(service service.InquiryService, logger zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		logger:  logger.With().Str("component", "inquiry_handler").Logger(),
	}
}

// Register wires the public contact route.
func (h *InquiryHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *InquiryHandler) submit(c *fiber.Ctx) error {
	var payload dto.InquiryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, warning, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "name, email, subject, and message are required")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to store inquiry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit inquiry")
	}

	message := "inquiry received"
	if warning != "" {
		message = message + "; " + warning
	}
	return utils.SendCreated(c, message, response)
}

// AdminInquiryHandler exposes the backoffice inquiry inbox.
type AdminInquiryHandler struct {
	service service.InquiryService
	logger  zerolog.Logger
}

// NewAdminInquiryHandler constructs the backoffice inquiry handler.
func NewAdminInquiryHandler(service service.InquiryService, logger zerolog.Logger) *AdminInquiryHandler {
	return &AdminInquiryHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_inquiry_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminInquiryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *AdminInquiryHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.InquiryListRequest{
		Page:     page,
		PageSize: pageSize,
		Unread:   c.QueryBool("unread"),
	}

	result, err := h.service.List(c.Context(), actorFromContext(c), req)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list inquiries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list inquiries")
	}

	return utils.SendSuccess(c, "inquiries retrieved", result)
}

func (h *AdminInquiryHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	inquiry, err := h.service.Get(c.Context(), actorFromContext(c), id)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		if errors.Is(err, service.ErrInquiryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "inquiry not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("inquiry_id", id).Msg("failed to fetch inquiry")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch inquiry")
	}

	return utils.SendSuccess(c, "inquiry retrieved", inquiry)
}
