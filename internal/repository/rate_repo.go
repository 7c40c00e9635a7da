package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// ErrRateNotFound indicates a currency code absent from the rate table.
var ErrRateNotFound = errors.New("exchange rate not found")

// RateRepository persists the versioned exchange rate table and its update
// history.
type RateRepository interface {
	All(ctx context.Context) ([]models.ExchangeRate, error)
	Get(ctx context.Context, code string) (models.ExchangeRate, error)
	// Update rewrites one rate and appends the corresponding history row in a
	// single transaction.
	Update(ctx context.Context, code string, newRate decimal.Decimal, updatedBy, note string) (models.ExchangeRateUpdate, error)
	History(ctx context.Context, code string, limit int) ([]models.ExchangeRateUpdate, error)
	// Seed inserts the default rates for codes not yet present.
	Seed(ctx context.Context, defaults map[string]decimal.Decimal) error
}

type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository constructs the exchange rate repository.
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) All(ctx context.Context) ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	err := r.db.WithContext(ctx).Order("code ASC").Find(&rates).Error
	return rates, err
}

func (r *rateRepository) Get(ctx context.Context, code string) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ExchangeRate{}, ErrRateNotFound
	}
	return rate, err
}

func (r *rateRepository) Update(ctx context.Context, code string, newRate decimal.Decimal, updatedBy, note string) (models.ExchangeRateUpdate, error) {
	var history models.ExchangeRateUpdate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ExchangeRate
		if err := tx.Where("code = ?", code).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRateNotFound
			}
			return err
		}

		if err := tx.Model(&models.ExchangeRate{}).
			Where("code = ?", code).
			Updates(map[string]interface{}{
				"rate":       newRate,
				"updated_by": updatedBy,
			}).Error; err != nil {
			return err
		}

		history = models.ExchangeRateUpdate{
			Code:      code,
			OldRate:   current.Rate,
			NewRate:   newRate,
			UpdatedBy: updatedBy,
			Note:      note,
		}
		return tx.Create(&history).Error
	})
	return history, err
}

func (r *rateRepository) History(ctx context.Context, code string, limit int) ([]models.ExchangeRateUpdate, error) {
	if limit <= 0 {
		limit = 20
	}
	query := r.db.WithContext(ctx).Model(&models.ExchangeRateUpdate{})
	if code != "" {
		query = query.Where("code = ?", code)
	}
	var updates []models.ExchangeRateUpdate
	err := query.Order("created_at DESC").Limit(limit).Find(&updates).Error
	return updates, err
}

func (r *rateRepository) Seed(ctx context.Context, defaults map[string]decimal.Decimal) error {
	for code, rate := range defaults {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ExchangeRate{}).
			Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		seed := models.ExchangeRate{Code: code, Rate: rate, UpdatedBy: "system"}
		if err := r.db.WithContext(ctx).Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}
