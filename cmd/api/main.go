package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/config"
	"github.com/banbasresort/backoffice-api/internal/database"
	"github.com/banbasresort/backoffice-api/internal/handler"
	"github.com/banbasresort/backoffice-api/internal/middleware"
	"github.com/banbasresort/backoffice-api/internal/repository"
	"github.com/banbasresort/backoffice-api/internal/router"
	"github.com/banbasresort/backoffice-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient == nil {
		logger.Warn().Msg("redis url not set; analytics caching disabled")
	} else {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	rateRepo := repository.NewRateRepository(db)
	contentRepo := repository.NewContentRepository(db)

	notifier := service.NewLogNotificationSender(logger)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, validate, logger)
	auditService := service.NewAuditService(auditRepo, logger)
	reservationService := service.NewReservationService(reservationRepo, inquiryRepo, auditService, notifier, validate, logger)
	inquiryService := service.NewInquiryService(inquiryRepo, notifier, validate, logger)
	rateService := service.NewRateService(rateRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(reservationRepo, inquiryRepo, rateService, redisClient, cfg.AnalyticsCacheTTL, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	contentService := service.NewContentService(contentRepo, logger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := rateService.Seed(seedCtx); err != nil {
		cancelSeed()
		log.Fatalf("failed to seed exchange rates: %v", err)
	}
	cancelSeed()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		ContentHandler:      handler.NewContentHandler(contentService, logger),
		InquiryHandler:      handler.NewInquiryHandler(inquiryService, logger),
		ReservationHandler:  handler.NewReservationHandler(reservationService, logger),
		AuditLogHandler:     handler.NewAuditLogHandler(auditService, logger),
		AdminInquiryHandler: handler.NewAdminInquiryHandler(inquiryService, logger),
		AnalyticsHandler:    handler.NewAnalyticsHandler(analyticsService, logger),
		RateHandler:         handler.NewRateHandler(rateService, logger),
		UserHandler:         handler.NewUserHandler(userService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		Logger:              logger,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
