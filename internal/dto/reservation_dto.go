package dto

import (
	"time"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// ReservationCreateRequest carries the booking form fields. Room quantities
// arrive as individual counters, mirroring the backoffice form, and are
// folded into the domain room-type map by the service.
type ReservationCreateRequest struct {
	GuestFullName   string  `json:"guest_full_name" validate:"required,min=2,max=200"`
	CompanyName     string  `json:"company_name" validate:"omitempty,max=200"`
	ArrivalDate     string  `json:"arrival_date" validate:"required,datetime=2006-01-02"`
	DepartureDate   string  `json:"departure_date" validate:"required,datetime=2006-01-02"`
	Nationality     string  `json:"nationality" validate:"required,max=100"`
	RoomCategory    string  `json:"room_category" validate:"required,oneof=availability pond_view garden_view long_house"`
	SingleRooms     int     `json:"single_rooms" validate:"min=0"`
	DoubleRooms     int     `json:"double_rooms" validate:"min=0"`
	TripleRooms     int     `json:"triple_rooms" validate:"min=0"`
	MealPlan        string  `json:"meal_plan" validate:"required,oneof=ep bb map ap 1n2d_jp 2n3d_jp 3n4d_jp"`
	TotalAdults     int     `json:"total_adults" validate:"required,min=1"`
	TotalChildren   int     `json:"total_children" validate:"min=0"`
	BookedBy        string  `json:"booked_by" validate:"omitempty,max=200"`
	ContactNumber   string  `json:"contact_number" validate:"omitempty,max=20"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash company complementary"`
	PaymentCurrency string  `json:"payment_currency" validate:"required,len=3"`
	TotalPrice      string  `json:"total_price" validate:"required"`
	GuestEmail      string  `json:"guest_email" validate:"omitempty,email"`
}

// ReservationUpdateRequest uses the same shape as creation plus the version
// stamp the client loaded, for optimistic conflict detection.
type ReservationUpdateRequest struct {
	ReservationCreateRequest
	Version int `json:"version" validate:"required,min=1"`
}

// ReservationDeleteRequest carries the free-text reason stored in the audit
// snapshot.
type ReservationDeleteRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ReservationListRequest captures list filters.
type ReservationListRequest struct {
	Page     int
	PageSize int
	Search   string
	DateFrom string
	DateTo   string
}

// ReservationResponse serializes a reservation for backoffice clients.
type ReservationResponse struct {
	ID              uint           `json:"id"`
	GuestFullName   string         `json:"guest_full_name"`
	CompanyName     string         `json:"company_name,omitempty"`
	ArrivalDate     string         `json:"arrival_date"`
	DepartureDate   string         `json:"departure_date"`
	Nights          int            `json:"nights"`
	Nationality     string         `json:"nationality"`
	RoomCategory    string         `json:"room_category"`
	NumberOfRooms   int            `json:"number_of_rooms"`
	RoomTypes       map[string]int `json:"room_types"`
	RoomTypesLabel  string         `json:"room_types_label"`
	MealPlan        string         `json:"meal_plan"`
	TotalAdults     int            `json:"total_adults"`
	TotalChildren   int            `json:"total_children"`
	TotalGuests     int            `json:"total_guests"`
	BookedBy        string         `json:"booked_by"`
	ContactNumber   string         `json:"contact_number,omitempty"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentCurrency string         `json:"payment_currency"`
	TotalPrice      string         `json:"total_price"`
	Version         int            `json:"version"`
	CreatedBy       string         `json:"created_by"`
	CreatedByID     uint           `json:"created_by_id"`
	UpdatedBy       string         `json:"updated_by,omitempty"`
	SourceInquiryID *uint          `json:"source_inquiry_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ReservationListResponse wraps a paginated reservation list.
type ReservationListResponse struct {
	Items      []ReservationResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewReservationResponse converts a model into a DTO.
func NewReservationResponse(model models.Reservation) ReservationResponse {
	roomTypes := make(map[string]int, len(model.RoomTypes))
	for _, roomType := range models.RoomTypeOrder {
		roomTypes[roomType] = model.RoomTypeCount(roomType)
	}

	response := ReservationResponse{
		ID:              model.ID,
		GuestFullName:   model.GuestFullName,
		CompanyName:     model.CompanyName,
		ArrivalDate:     model.ArrivalDate.Format("2006-01-02"),
		DepartureDate:   model.DepartureDate.Format("2006-01-02"),
		Nights:          model.Nights(),
		Nationality:     model.Nationality,
		RoomCategory:    model.RoomCategory,
		NumberOfRooms:   model.NumberOfRooms,
		RoomTypes:       roomTypes,
		RoomTypesLabel:  model.RoomTypesDisplay(),
		MealPlan:        model.MealPlan,
		TotalAdults:     model.TotalAdults,
		TotalChildren:   model.TotalChildren,
		TotalGuests:     model.TotalGuests(),
		BookedBy:        model.BookedBy,
		ContactNumber:   model.ContactNumber,
		PaymentMethod:   model.PaymentMethod,
		PaymentCurrency: model.PaymentCurrency,
		TotalPrice:      model.TotalPrice.StringFixed(2),
		Version:         model.Version,
		CreatedByID:     model.CreatedByID,
		SourceInquiryID: model.SourceInquiryID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if model.CreatedBy != nil {
		response.CreatedBy = model.CreatedBy.DisplayName()
	}
	if model.UpdatedBy != nil {
		response.UpdatedBy = model.UpdatedBy.DisplayName()
	}
	return response
}
