package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/utils"
)

// RequireCapability ensures the authenticated actor holds the given
// capability before the request reaches its handler. Denials are mapped to
// distinct responses so clients can tell a missing login from a missing role
// assignment. Privileged denials are recorded in the security log.
func RequireCapability(logger zerolog.Logger, capability authz.Capability) fiber.Handler {
	securityLogger := logger.With().Str("component", "security").Logger()

	return func(c *fiber.Ctx) error {
		actor := ActorFromContext(c)
		err := authz.Authorize(actor, capability)
		if err == nil {
			return c.Next()
		}

		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		case errors.Is(err, authz.ErrNoRoleAssigned):
			return utils.SendError(c, fiber.StatusForbidden, "no role assigned; contact an administrator")
		case errors.Is(err, authz.ErrInsufficientRole):
			if capability == authz.CapabilityAdminOnly && actor != nil {
				securityLogger.Warn().
					Uint("actor_id", actor.ID).
					Str("actor_role", actor.NormalizedRole()).
					Str("path", c.Path()).
					Str("correlation_id", GetCorrelationID(c)).
					Msg("privileged endpoint denied")
			}
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		default:
			return utils.SendError(c, fiber.StatusForbidden, "access denied")
		}
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
