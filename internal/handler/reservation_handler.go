package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// ReservationHandler exposes the backoffice reservation endpoints.
type ReservationHandler struct {
	service service.ReservationService
	logger  zerolog.Logger
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(service service.ReservationService, logger zerolog.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		logger:  logger.With().Str("component", "reservation_handler").Logger(),
	}
}

// Register attaches routes. Read routes sit behind the read gate, mutating
// routes behind the write gate.
func (h *ReservationHandler) Register(router fiber.Router, read, write fiber.Handler) {
	router.Get("", read, h.list)
	router.Post("", write, h.create)
	router.Get("/:id", read, h.get)
	router.Put("/:id", write, h.update)
	router.Delete("/:id", write, h.remove)
}

// RegisterConvert mounts the inquiry-to-reservation conversion on the
// inquiries surface.
func (h *ReservationHandler) RegisterConvert(router fiber.Router, write fiber.Handler) {
	router.Post("/:id/convert", write, h.convertInquiry)
}

func (h *ReservationHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.ReservationListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	result, err := h.service.List(c.Context(), actorFromContext(c), req)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list reservations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reservations")
	}

	return utils.SendSuccess(c, "reservations retrieved", result)
}

func (h *ReservationHandler) create(c *fiber.Ctx) error {
	var payload dto.ReservationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return h.sendWriteError(c, err, "failed to create reservation")
	}

	return utils.SendCreated(c, h.withWarning("reservation created", result.Warning), result.Reservation)
}

func (h *ReservationHandler) convertInquiry(c *fiber.Ctx) error {
	inquiryID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReservationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.ConvertInquiry(c.Context(), actorFromContext(c), inquiryID, payload)
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "inquiry not found")
		}
		return h.sendWriteError(c, err, "failed to convert inquiry")
	}

	return utils.SendCreated(c, h.withWarning("inquiry converted to reservation", result.Warning), result.Reservation)
}

func (h *ReservationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	reservation, trail, err := h.service.Get(c.Context(), actorFromContext(c), id)
	if err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		if errors.Is(err, service.ErrReservationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reservation not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("reservation_id", id).Msg("failed to fetch reservation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch reservation")
	}

	return utils.SendSuccess(c, "reservation retrieved", fiber.Map{
		"reservation": reservation,
		"audit_trail": trail,
	})
}

func (h *ReservationHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReservationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrVersionConflict) {
			return utils.SendError(c, fiber.StatusConflict, "reservation was modified by someone else; reload and retry")
		}
		return h.sendWriteError(c, err, "failed to update reservation")
	}

	return utils.SendSuccess(c, h.withWarning("reservation updated", result.Warning), result.Reservation)
}

func (h *ReservationHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReservationDeleteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id, payload.Reason); err != nil {
		if resp, handled := sendAuthzError(c, err); handled {
			return resp
		}
		if errors.Is(err, service.ErrReservationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "reservation not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("reservation_id", id).Msg("failed to delete reservation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete reservation")
	}

	return utils.SendSuccess(c, "reservation deleted", nil)
}

func (h *ReservationHandler) sendWriteError(c *fiber.Ctx, err error, fallback string) error {
	if resp, handled := sendAuthzError(c, err); handled {
		return resp
	}
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "reservation not found")
	case errors.Is(err, service.ErrInvalidDates),
		errors.Is(err, service.ErrArrivalInPast),
		errors.Is(err, service.ErrNoRoomsSelected),
		errors.Is(err, service.ErrInvalidPrice),
		isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

func (h *ReservationHandler) withWarning(message, warning string) string {
	if warning == "" {
		return message
	}
	return message + "; " + warning
}
