package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/currency"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// AnalyticsService aggregates dashboard and reporting figures. Revenue
// blocks are included only for actors holding the admin capability.
type AnalyticsService interface {
	Dashboard(ctx context.Context, actor authz.Actor) (dto.DashboardResponse, error)
	Report(ctx context.Context, actor authz.Actor, req dto.AnalyticsRequest) (dto.AnalyticsResponse, error)
}

type analyticsService struct {
	reservations repository.ReservationRepository
	inquiries    repository.InquiryRepository
	rates        RateService
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAnalyticsService constructs the analytics service. The redis client may
// be nil, in which case caching is skipped.
func NewAnalyticsService(
	reservations repository.ReservationRepository,
	inquiries repository.InquiryRepository,
	rates RateService,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsService{
		reservations: reservations,
		inquiries:    inquiries,
		rates:        rates,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "analytics_service").Logger(),
		now:          time.Now,
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, actor authz.Actor) (dto.DashboardResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.DashboardResponse{}, err
	}

	today := s.now().Truncate(24 * time.Hour)
	last30 := today.AddDate(0, 0, -30)

	total, err := s.reservations.Count(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	recent, err := s.reservations.CountSince(ctx, last30)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	occupancy, err := s.reservations.OccupiedRooms(ctx, today)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	inquiryCount, err := s.inquiries.Count(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		TotalReservations:  total,
		RecentReservations: recent,
		CurrentOccupancy:   occupancy,
		TotalInquiries:     inquiryCount,
	}

	latest, err := s.reservations.Recent(ctx, 5)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.LatestReservations = make([]dto.ReservationResponse, 0, len(latest))
	for _, reservation := range latest {
		response.LatestReservations = append(response.LatestReservations, dto.NewReservationResponse(reservation))
	}

	unread, err := s.inquiries.RecentUnread(ctx, 5)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.UnreadInquiries = make([]dto.InquiryResponse, 0, len(unread))
	for _, inquiry := range unread {
		response.UnreadInquiries = append(response.UnreadInquiries, dto.NewInquiryResponse(inquiry))
	}

	if authz.CanViewRevenue(&actor) {
		rates, err := s.rates.Snapshot(ctx)
		if err != nil {
			return dto.DashboardResponse{}, err
		}

		all, err := s.reservations.ListCreatedSince(ctx, time.Time{})
		if err != nil {
			return dto.DashboardResponse{}, err
		}
		totalRevenue, err := sumRevenue(all, models.BaseCurrency, rates)
		if err != nil {
			return dto.DashboardResponse{}, err
		}

		recentReservations, err := s.reservations.ListCreatedSince(ctx, last30)
		if err != nil {
			return dto.DashboardResponse{}, err
		}
		monthRevenue, err := sumRevenue(recentReservations, models.BaseCurrency, rates)
		if err != nil {
			return dto.DashboardResponse{}, err
		}

		response.RevenueTotal = totalRevenue.StringFixed(2)
		response.RevenueLast30Days = monthRevenue.StringFixed(2)
		response.RevenueCurrency = models.BaseCurrency
	}

	return response, nil
}

func (s *analyticsService) Report(ctx context.Context, actor authz.Actor, req dto.AnalyticsRequest) (dto.AnalyticsResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.AnalyticsResponse{}, err
	}

	tracer := otel.Tracer("github.com/banbasresort/backoffice-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.report")
	defer span.End()

	from, to := s.resolveWindow(req)
	displayCurrency := req.Currency
	if displayCurrency == "" {
		displayCurrency = models.BaseCurrency
	}
	includeRevenue := authz.CanViewRevenue(&actor)

	cacheKey := fmt.Sprintf("analytics:report:%s:%s:%s:%t",
		from.Format("2006-01-02"), to.Format("2006-01-02"), displayCurrency, includeRevenue)
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	reservations, err := s.reservations.ListBetween(ctx, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_reservations_failed")
		return dto.AnalyticsResponse{}, err
	}
	inquiryCount, err := s.inquiries.CountBetween(ctx, from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		span.RecordError(err)
		return dto.AnalyticsResponse{}, err
	}

	response := dto.AnalyticsResponse{
		DateFrom:          from.Format("2006-01-02"),
		DateTo:            to.Format("2006-01-02"),
		TotalReservations: int64(len(reservations)),
		InquiryCount:      inquiryCount,
	}
	for _, reservation := range reservations {
		response.TotalAdults += int64(reservation.TotalAdults)
		response.TotalChildren += int64(reservation.TotalChildren)
		response.TotalRooms += int64(reservation.NumberOfRooms)
	}
	span.SetAttributes(attribute.Int("analytics.reservation_count", len(reservations)))

	if includeRevenue {
		rates, err := s.rates.Snapshot(ctx)
		if err != nil {
			span.RecordError(err)
			return dto.AnalyticsResponse{}, err
		}

		total, err := sumRevenue(reservations, displayCurrency, rates)
		if err != nil {
			span.RecordError(err)
			return dto.AnalyticsResponse{}, err
		}

		byCurrency := map[string]string{}
		perCurrency := map[string]decimal.Decimal{}
		for _, reservation := range reservations {
			perCurrency[reservation.PaymentCurrency] = perCurrency[reservation.PaymentCurrency].Add(reservation.TotalPrice)
		}
		for code, amount := range perCurrency {
			byCurrency[code] = amount.StringFixed(2)
		}

		response.Revenue = &dto.RevenueBreakdown{
			Currency:       displayCurrency,
			CurrencySymbol: currency.Symbol(displayCurrency),
			Total:          total.StringFixed(2),
			ByCurrency:     byCurrency,
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return response, nil
}

func (s *analyticsService) resolveWindow(req dto.AnalyticsRequest) (time.Time, time.Time) {
	today := s.now().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -30)
	to := today

	if parsed, err := parseDate(req.DateFrom); err == nil && req.DateFrom != "" {
		from = parsed
	}
	if parsed, err := parseDate(req.DateTo); err == nil && req.DateTo != "" {
		to = parsed
	}
	return from, to
}

// sumRevenue converts each reservation's price into the target currency,
// rounding per line before summing.
func sumRevenue(reservations []models.Reservation, target string, rates currency.RateTable) (decimal.Decimal, error) {
	lines := make([]currency.Line, 0, len(reservations))
	for _, reservation := range reservations {
		lines = append(lines, currency.Line{
			Amount:   reservation.TotalPrice,
			Currency: reservation.PaymentCurrency,
		})
	}
	return currency.SumConverted(lines, target, rates)
}
