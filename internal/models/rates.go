package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the reference currency all exchange rates are expressed
// against.
const BaseCurrency = "NRS"

// ExchangeRate is one row of the operator-maintained rate table. Rate is the
// multiplier from the base currency into Code.
type ExchangeRate struct {
	Code      string          `gorm:"primaryKey;size:3" json:"code"`
	Rate      decimal.Decimal `gorm:"type:numeric(16,8);not null" json:"rate"`
	UpdatedBy string          `gorm:"size:150" json:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ExchangeRateUpdate records one historical rate change. Rows are append-only.
type ExchangeRateUpdate struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Code      string          `gorm:"size:3;not null;index" json:"code"`
	OldRate   decimal.Decimal `gorm:"type:numeric(16,8);not null" json:"old_rate"`
	NewRate   decimal.Decimal `gorm:"type:numeric(16,8);not null" json:"new_rate"`
	UpdatedBy string          `gorm:"size:150" json:"updated_by"`
	Note      string          `gorm:"size:255" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// CurrencySymbols maps supported codes to their display symbols.
var CurrencySymbols = map[string]string{
	"NRS": "रु",
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
}

// CurrencyNames maps supported codes to their full names.
var CurrencyNames = map[string]string{
	"NRS": "Nepali Rupee",
	"INR": "Indian Rupee",
	"USD": "US Dollar",
	"EUR": "Euro",
}
