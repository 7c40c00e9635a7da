package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/config"
	"github.com/banbasresort/backoffice-api/internal/handler"
	"github.com/banbasresort/backoffice-api/internal/middleware"
	"github.com/banbasresort/backoffice-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	ContentHandler      *handler.ContentHandler
	InquiryHandler      *handler.InquiryHandler
	ReservationHandler  *handler.ReservationHandler
	AuditLogHandler     *handler.AuditLogHandler
	AdminInquiryHandler *handler.AdminInquiryHandler
	AnalyticsHandler    *handler.AnalyticsHandler
	RateHandler         *handler.RateHandler
	UserHandler         *handler.UserHandler
	JWTMiddleware       fiber.Handler
	Logger              zerolog.Logger
}

// Register wires the HTTP routes into the fiber application. The public site
// lives under /api/v1; the backoffice under /api/admin behind the JWT and
// capability gates.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}
	if deps.ContentHandler != nil {
		deps.ContentHandler.Register(api)
	}
	if deps.InquiryHandler != nil {
		contact := api.Group("/contact",
			middleware.RateLimit("contact", cfg.ContactRateLimit, cfg.ContactRateWindow))
		deps.InquiryHandler.Register(contact)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := app.Group("/api/admin", jwtMiddleware)

	viewerRead := middleware.RequireCapability(deps.Logger, authz.CapabilityViewerRead)
	agentWrite := middleware.RequireCapability(deps.Logger, authz.CapabilityAgentWrite)
	adminOnly := middleware.RequireCapability(deps.Logger, authz.CapabilityAdminOnly)

	if deps.ReservationHandler != nil {
		deps.ReservationHandler.Register(admin.Group("/reservations"), viewerRead, agentWrite)
	}
	if deps.AuditLogHandler != nil {
		deps.AuditLogHandler.Register(admin.Group("/audit-logs", viewerRead))
	}
	if deps.AdminInquiryHandler != nil {
		inquiries := admin.Group("/inquiries", viewerRead)
		deps.AdminInquiryHandler.Register(inquiries)
		if deps.ReservationHandler != nil {
			deps.ReservationHandler.RegisterConvert(inquiries, agentWrite)
		}
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(admin, viewerRead)
	}
	if deps.RateHandler != nil {
		deps.RateHandler.Register(admin.Group("/rates"), viewerRead, adminOnly)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.Register(admin.Group("/users", adminOnly))
	}
}
