// Package currency converts monetary amounts between the currencies the
// resort accepts. Conversion is display-only: stored reservation prices keep
// their original currency, and all math is fixed-point decimal to avoid
// rounding drift in aggregated revenue totals.
package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// ErrUnsupportedCurrency signals a code absent from the rate table.
var ErrUnsupportedCurrency = errors.New("currency: unsupported currency code")

// RateTable is a read-only snapshot of multipliers from the base currency
// (models.BaseCurrency) into each supported currency.
type RateTable map[string]decimal.Decimal

// DefaultRates seeds a fresh installation. Rates are relative to NRS.
func DefaultRates() RateTable {
	return RateTable{
		"NRS": decimal.NewFromInt(1),
		"INR": decimal.RequireFromString("0.625"),
		"USD": decimal.RequireFromString("0.0075"),
		"EUR": decimal.RequireFromString("0.0069"),
	}
}

// Codes returns the supported currency codes in stable order.
func (t RateTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for _, code := range []string{"NRS", "INR", "USD", "EUR"} {
		if _, ok := t[code]; ok {
			codes = append(codes, code)
		}
	}
	for code := range t {
		if !containsCode(codes, code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// Convert translates amount between two currencies via the base currency and
// rounds the result to two decimal places, half up. Identical currencies
// short-circuit without a rounding pass so stored values pass through intact.
func Convert(amount decimal.Decimal, from, to string, rates RateTable) (decimal.Decimal, error) {
	from = normalizeCode(from)
	to = normalizeCode(to)

	if from == to {
		if _, ok := rates[from]; !ok {
			return decimal.Zero, ErrUnsupportedCurrency
		}
		return amount, nil
	}

	fromRate, ok := rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, ErrUnsupportedCurrency
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Zero, ErrUnsupportedCurrency
	}

	if amount.IsZero() {
		return decimal.Zero.Round(2), nil
	}

	converted := amount.Div(fromRate).Mul(toRate)
	return converted.Round(2), nil
}

// Line is one monetary amount awaiting conversion.
type Line struct {
	Amount   decimal.Decimal
	Currency string
}

// SumConverted totals mixed-currency lines in the target currency. Each line
// is converted and rounded individually before summing; summing raw amounts
// and rounding once would drift on large aggregates.
func SumConverted(lines []Line, target string, rates RateTable) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		converted, err := Convert(line.Amount, line.Currency, target, rates)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(converted)
	}
	return total, nil
}

// Symbol returns the display symbol for a currency code, falling back to the
// code itself.
func Symbol(code string) string {
	if symbol, ok := models.CurrencySymbols[normalizeCode(code)]; ok {
		return symbol
	}
	return code
}

// Name returns the full currency name, falling back to the code.
func Name(code string) string {
	if name, ok := models.CurrencyNames[normalizeCode(code)]; ok {
		return name
	}
	return code
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
