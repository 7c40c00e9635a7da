package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// RateHandler exposes exchange rate management.
type RateHandler struct {
	service service.RateService
	logger  zerolog.Logger
}

// NewRateHandler constructs the handler.
func NewRateHandler(service service.RateService, logger zerolog.Logger) *RateHandler {
	return &RateHandler{
		service: service,
		logger:  logger.With().Str("component", "rate_handler").Logger(),
	}
}

// Register attaches routes. Rate changes are restricted to administrators;
// the table itself is visible to every staff role.
func (h *RateHandler) Register(router fiber.Router, read, adminGate fiber.Handler) {
	router.Get("", read, h.list)
	router.Put("/:code", adminGate, h.update)
	router.Get("/:code/history", read, h.history)
}

func (h *RateHandler) list(c *fiber.Ctx) error {
	rates, err := h.service.List(c.Context(), actorFromContext(c))
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list exchange rates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exchange rates")
	}

	return utils.SendSuccess(c, "exchange rates retrieved", rates)
}

func (h *RateHandler) update(c *fiber.Ctx) error {
	var payload dto.RateUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), actorFromContext(c), c.Params("code"), payload)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		switch {
		case errors.Is(err, service.ErrRateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "currency not found")
		case errors.Is(err, service.ErrBaseImmutable):
			return utils.SendError(c, fiber.StatusBadRequest, "the base currency rate cannot be changed")
		case errors.Is(err, service.ErrInvalidRate), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "rate must be a positive decimal")
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("code", c.Params("code")).Msg("failed to update exchange rate")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update exchange rate")
		}
	}

	return utils.SendSuccess(c, "exchange rate updated", result)
}

func (h *RateHandler) history(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	history, err := h.service.History(c.Context(), actorFromContext(c), c.Params("code"), limit)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		if errors.Is(err, service.ErrRateNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "currency not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Str("code", c.Params("code")).Msg("failed to fetch rate history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch rate history")
	}

	return utils.SendSuccess(c, "rate history retrieved", history)
}
