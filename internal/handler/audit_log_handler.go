package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// AuditLogHandler exposes the reservation audit trail.
type AuditLogHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditLogHandler constructs the handler.
func NewAuditLogHandler(service service.AuditService, logger zerolog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_log_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AuditLogHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AuditLogHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}
	reservationID, err := parseQueryInt(c, "reservation_id")
	if err != nil || reservationID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid reservation id")
	}

	req := dto.AuditLogListRequest{
		Page:          page,
		PageSize:      pageSize,
		Action:        c.Query("action"),
		ActorID:       uint(actorID),
		ReservationID: uint(reservationID),
		GuestName:     c.Query("guest_name"),
		From:          c.Query("from"),
		To:            c.Query("to"),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list audit entries")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit entries")
	}

	return utils.SendSuccess(c, "audit entries retrieved", result)
}
