package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room categories offered by the resort.
const (
	RoomCategoryAvailability = "availability"
	RoomCategoryPondView     = "pond_view"
	RoomCategoryGardenView   = "garden_view"
	RoomCategoryLongHouse    = "long_house"
)

// Room types tracked in the reservation quantity map.
const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeTriple = "triple"
)

// Payment methods accepted at the front desk.
const (
	PaymentMethodCash          = "cash"
	PaymentMethodCompany       = "company"
	PaymentMethodComplementary = "complementary"
)

// RoomTypeOrder fixes the display order of room type breakdowns.
var RoomTypeOrder = []string{RoomTypeSingle, RoomTypeDouble, RoomTypeTriple}

// MealPlans lists the accepted meal plan codes.
var MealPlans = []string{"ep", "bb", "map", "ap", "1n2d_jp", "2n3d_jp", "3n4d_jp"}

// Reservation is the protected booking record managed from the backoffice.
type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	GuestFullName   string            `gorm:"size:200;not null;index" json:"guest_full_name"`
	CompanyName     string            `gorm:"size:200" json:"company_name"`
	ArrivalDate     time.Time         `gorm:"not null;index" json:"arrival_date"`
	DepartureDate   time.Time         `gorm:"not null;index" json:"departure_date"`
	Nationality     string            `gorm:"size:100;not null" json:"nationality"`
	RoomCategory    string            `gorm:"size:20;not null" json:"room_category"`
	NumberOfRooms   int               `gorm:"not null" json:"number_of_rooms"`
	RoomTypes       datatypes.JSONMap `gorm:"type:json" json:"room_types"`
	MealPlan        string            `gorm:"size:20;not null" json:"meal_plan"`
	TotalAdults     int               `gorm:"not null" json:"total_adults"`
	TotalChildren   int               `gorm:"default:0" json:"total_children"`
	BookedBy        string            `gorm:"size:200;not null" json:"booked_by"`
	ContactNumber   string            `gorm:"size:20" json:"contact_number"`
	PaymentMethod   string            `gorm:"size:20;not null" json:"payment_method"`
	PaymentCurrency string            `gorm:"size:3;not null" json:"payment_currency"`
	TotalPrice      decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Version         int               `gorm:"default:1;not null" json:"version"`
	CreatedByID     uint              `gorm:"not null;index" json:"created_by_id"`
	CreatedBy       *User             `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	UpdatedByID     *uint             `json:"updated_by_id"`
	UpdatedBy       *User             `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
	SourceInquiryID *uint             `gorm:"index" json:"source_inquiry_id"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Nights is the stay length in whole nights.
func (r Reservation) Nights() int {
	return int(r.DepartureDate.Sub(r.ArrivalDate).Hours() / 24)
}

// TotalGuests sums adults and children.
func (r Reservation) TotalGuests() int {
	return r.TotalAdults + r.TotalChildren
}

// RoomTypeCount reads a single quantity from the room type map, tolerating the
// numeric types the JSON codec may hand back.
func (r Reservation) RoomTypeCount(roomType string) int {
	if r.RoomTypes == nil {
		return 0
	}
	return jsonCount(r.RoomTypes[roomType])
}

// RoomTypeTotal sums every quantity in the room type map.
func (r Reservation) RoomTypeTotal() int {
	total := 0
	for _, roomType := range RoomTypeOrder {
		total += r.RoomTypeCount(roomType)
	}
	// Count unknown keys too so the invariant holds for legacy rows.
	for key, value := range r.RoomTypes {
		if !isKnownRoomType(key) {
			total += jsonCount(value)
		}
	}
	return total
}

// RoomTypesDisplay renders the breakdown as "1 Single, 2 Double".
func (r Reservation) RoomTypesDisplay() string {
	parts := make([]string, 0, len(r.RoomTypes))
	for _, roomType := range RoomTypeOrder {
		if count := r.RoomTypeCount(roomType); count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, titleCase(roomType)))
		}
	}
	extras := make([]string, 0)
	for key, value := range r.RoomTypes {
		if !isKnownRoomType(key) {
			if count := jsonCount(value); count > 0 {
				extras = append(extras, fmt.Sprintf("%d %s", count, titleCase(key)))
			}
		}
	}
	sort.Strings(extras)
	parts = append(parts, extras...)
	if len(parts) == 0 {
		return "None specified"
	}
	return strings.Join(parts, ", ")
}

// BeforeSave keeps NumberOfRooms consistent with the room type map.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	if total := r.RoomTypeTotal(); total > 0 {
		r.NumberOfRooms = total
	}
	return nil
}

func isKnownRoomType(key string) bool {
	for _, known := range RoomTypeOrder {
		if key == known {
			return true
		}
	}
	return false
}

func jsonCount(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
