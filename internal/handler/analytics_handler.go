package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// AnalyticsHandler exposes the dashboard summary and date-range reports.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches routes behind the read gate.
func (h *AnalyticsHandler) Register(router fiber.Router, read fiber.Handler) {
	router.Get("/dashboard", read, h.dashboard)
	router.Get("/analytics", read, h.report)
}

func (h *AnalyticsHandler) dashboard(c *fiber.Ctx) error {
	result, err := h.service.Dashboard(c.Context(), actorFromContext(c))
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard retrieved", result)
}

func (h *AnalyticsHandler) report(c *fiber.Ctx) error {
	req := dto.AnalyticsRequest{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Currency: c.Query("currency"),
	}

	result, err := h.service.Report(c.Context(), actorFromContext(c), req)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build analytics report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build analytics report")
	}

	return utils.SendSuccess(c, "analytics report retrieved", result)
}
