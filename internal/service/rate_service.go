package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/currency"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// Rate service errors.
var (
	ErrRateNotFound  = repository.ErrRateNotFound
	ErrBaseImmutable = errors.New("the base currency rate cannot be changed")
	ErrInvalidRate   = errors.New("rate must be a positive decimal")
)

// RateService manages the operator-maintained exchange rate table. Updates
// go through an explicit API and append to a history log; nothing is patched
// in place.
type RateService interface {
	List(ctx context.Context, actor authz.Actor) ([]dto.RateResponse, error)
	Update(ctx context.Context, actor authz.Actor, code string, req dto.RateUpdateRequest) (dto.RateUpdateResponse, error)
	History(ctx context.Context, actor authz.Actor, code string, limit int) ([]dto.RateUpdateResponse, error)
	// Snapshot returns the current table for conversion calls. Internal
	// consumers (analytics) call it without an actor gate.
	Snapshot(ctx context.Context) (currency.RateTable, error)
	// Seed installs the default rates on first boot.
	Seed(ctx context.Context) error
}

type rateService struct {
	repo      repository.RateRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRateService constructs the exchange rate service.
func NewRateService(repo repository.RateRepository, validate *validator.Validate, logger zerolog.Logger) RateService {
	return &rateService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "rate_service").Logger(),
	}
}

func (s *rateService) List(ctx context.Context, actor authz.Actor) ([]dto.RateResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return nil, err
	}

	rates, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RateResponse, 0, len(rates))
	for _, rate := range rates {
		responses = append(responses, dto.NewRateResponse(rate, currency.Symbol(rate.Code), currency.Name(rate.Code)))
	}
	return responses, nil
}

func (s *rateService) Update(ctx context.Context, actor authz.Actor, code string, req dto.RateUpdateRequest) (dto.RateUpdateResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAdminOnly); err != nil {
		return dto.RateUpdateResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.RateUpdateResponse{}, err
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == models.BaseCurrency {
		return dto.RateUpdateResponse{}, ErrBaseImmutable
	}

	newRate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil || !newRate.IsPositive() {
		return dto.RateUpdateResponse{}, ErrInvalidRate
	}

	history, err := s.repo.Update(ctx, code, newRate, actor.Name, strings.TrimSpace(req.Note))
	if err != nil {
		return dto.RateUpdateResponse{}, err
	}

	s.logger.Info().
		Str("code", code).
		Str("old_rate", history.OldRate.String()).
		Str("new_rate", history.NewRate.String()).
		Uint("actor_id", actor.ID).
		Msg("exchange rate updated")
	return dto.NewRateUpdateResponse(history), nil
}

func (s *rateService) History(ctx context.Context, actor authz.Actor, code string, limit int) ([]dto.RateUpdateResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return nil, err
	}

	updates, err := s.repo.History(ctx, strings.ToUpper(strings.TrimSpace(code)), limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RateUpdateResponse, 0, len(updates))
	for _, update := range updates {
		responses = append(responses, dto.NewRateUpdateResponse(update))
	}
	return responses, nil
}

func (s *rateService) Snapshot(ctx context.Context) (currency.RateTable, error) {
	rates, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	table := currency.RateTable{}
	for _, rate := range rates {
		table[rate.Code] = rate.Rate
	}
	if len(table) == 0 {
		table = currency.DefaultRates()
	}
	return table, nil
}

func (s *rateService) Seed(ctx context.Context) error {
	defaults := map[string]decimal.Decimal{}
	for code, rate := range currency.DefaultRates() {
		defaults[code] = rate
	}
	return s.repo.Seed(ctx, defaults)
}
