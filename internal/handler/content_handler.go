package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/service"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// ContentHandler serves the public resort catalog.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("component", "content_handler").Logger(),
	}
}

// Register attaches the public catalog routes.
func (h *ContentHandler) Register(router fiber.Router) {
	router.Get("/rooms", h.rooms)
	router.Get("/rooms/:id", h.room)
	router.Get("/amenities", h.amenities)
	router.Get("/gallery", h.gallery)
	router.Get("/resort", h.resort)
}

func (h *ContentHandler) rooms(c *fiber.Ctx) error {
	rooms, err := h.service.Rooms(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list room types")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list room types")
	}
	return utils.SendSuccess(c, "room types retrieved", rooms)
}

func (h *ContentHandler) room(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	room, err := h.service.Room(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomTypeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "room type not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("room_type_id", id).Msg("failed to fetch room type")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch room type")
	}
	return utils.SendSuccess(c, "room type retrieved", room)
}

func (h *ContentHandler) amenities(c *fiber.Ctx) error {
	amenities, err := h.service.Amenities(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list amenities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list amenities")
	}
	return utils.SendSuccess(c, "amenities retrieved", amenities)
}

func (h *ContentHandler) gallery(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.Gallery(c.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list gallery items")
	}
	return utils.SendSuccess(c, "gallery retrieved", result)
}

func (h *ContentHandler) resort(c *fiber.Ctx) error {
	info, err := h.service.Resort(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch resort info")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch resort info")
	}
	return utils.SendSuccess(c, "resort info retrieved", info)
}
