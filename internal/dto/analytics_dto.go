package dto

import (
	"time"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// DashboardResponse is the landing page summary. RevenueTotal and
// RevenueLast30Days are present only for admin actors.
type DashboardResponse struct {
	TotalReservations  int64                 `json:"total_reservations"`
	RecentReservations int64                 `json:"recent_reservations"`
	CurrentOccupancy   int64                 `json:"current_occupancy"`
	TotalInquiries     int64                 `json:"total_inquiries"`
	RevenueTotal       string                `json:"revenue_total,omitempty"`
	RevenueLast30Days  string                `json:"revenue_last_30_days,omitempty"`
	RevenueCurrency    string                `json:"revenue_currency,omitempty"`
	LatestReservations []ReservationResponse `json:"latest_reservations"`
	UnreadInquiries    []InquiryResponse     `json:"unread_inquiries"`
}

// AnalyticsRequest captures the report window and display currency.
type AnalyticsRequest struct {
	DateFrom string
	DateTo   string
	Currency string
}

// AnalyticsResponse aggregates a date-range report. The revenue block is
// omitted for non-admin actors.
type AnalyticsResponse struct {
	DateFrom          string            `json:"date_from"`
	DateTo            string            `json:"date_to"`
	TotalReservations int64             `json:"total_reservations"`
	TotalAdults       int64             `json:"total_adults"`
	TotalChildren     int64             `json:"total_children"`
	TotalRooms        int64             `json:"total_rooms"`
	InquiryCount      int64             `json:"inquiry_count"`
	Revenue           *RevenueBreakdown `json:"revenue,omitempty"`
	CacheHit          bool              `json:"cache_hit,omitempty"`
}

// RevenueBreakdown reports converted revenue totals. Each reservation's
// price is converted and rounded individually before summing.
type RevenueBreakdown struct {
	Currency       string            `json:"currency"`
	CurrencySymbol string            `json:"currency_symbol"`
	Total          string            `json:"total"`
	ByCurrency     map[string]string `json:"by_currency"`
}

// RateResponse serializes one exchange rate row.
type RateResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Rate      string    `json:"rate"`
	IsBase    bool      `json:"is_base"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RateUpdateRequest changes one exchange rate.
type RateUpdateRequest struct {
	Rate string `json:"rate" validate:"required"`
	Note string `json:"note" validate:"omitempty,max=255"`
}

// RateUpdateResponse reports an applied rate change.
type RateUpdateResponse struct {
	Code      string    `json:"code"`
	OldRate   string    `json:"old_rate"`
	NewRate   string    `json:"new_rate"`
	UpdatedBy string    `json:"updated_by"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRateResponse converts a model into a DTO.
func NewRateResponse(model models.ExchangeRate, symbol, name string) RateResponse {
	return RateResponse{
		Code:      model.Code,
		Name:      name,
		Symbol:    symbol,
		Rate:      model.Rate.String(),
		IsBase:    model.Code == models.BaseCurrency,
		UpdatedBy: model.UpdatedBy,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewRateUpdateResponse converts a history row into a DTO.
func NewRateUpdateResponse(model models.ExchangeRateUpdate) RateUpdateResponse {
	return RateUpdateResponse{
		Code:      model.Code,
		OldRate:   model.OldRate.String(),
		NewRate:   model.NewRate.String(),
		UpdatedBy: model.UpdatedBy,
		Note:      model.Note,
		CreatedAt: model.CreatedAt,
	}
}
