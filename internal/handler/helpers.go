package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/middleware"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(parsed), nil
}

// actorFromContext returns the staff identity bound by the JWT middleware.
// The zero actor is treated as unauthenticated by the authorization gate.
func actorFromContext(c *fiber.Ctx) authz.Actor {
	if actor := middleware.ActorFromContext(c); actor != nil {
		return *actor
	}
	return authz.Actor{}
}

// sendAuthzError maps gate denials onto their HTTP responses. Returns false
// when the error is not an authorization denial.
func sendAuthzError(c *fiber.Ctx, err error) (error, bool) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required"), true
	case errors.Is(err, authz.ErrNoRoleAssigned):
		return utils.SendError(c, fiber.StatusForbidden, "no role assigned; contact an administrator"), true
	case errors.Is(err, authz.ErrInsufficientRole):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions"), true
	case errors.Is(err, authz.ErrOwnershipViolation):
		return utils.SendError(c, fiber.StatusForbidden, "you can only modify reservations you created"), true
	default:
		return nil, false
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
