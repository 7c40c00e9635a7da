package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType is a public catalog entry describing a bookable room class.
type RoomType struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`
	MaxOccupancy int             `gorm:"not null" json:"max_occupancy"`
	SizeSqm      int             `json:"size_sqm"`
	Amenities    string          `gorm:"type:text" json:"amenities"`
	ImageURL     string          `gorm:"size:512" json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Amenity is a resort facility shown on the marketing site.
type Amenity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconClass   string    `gorm:"size:50" json:"icon_class"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	IsFeatured  bool      `gorm:"index" json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// Gallery media types.
const (
	GalleryMediaImage = "image"
	GalleryMediaVideo = "video"
)

// GalleryCategories lists accepted gallery filter categories.
var GalleryCategories = []string{"rooms", "amenities", "dining", "exterior", "activities"}

// GalleryItem captures media published in the public gallery.
type GalleryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	MediaType   string    `gorm:"size:10;default:image" json:"media_type"`
	Category    string    `gorm:"size:50;index" json:"category"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	VideoURL    string    `gorm:"size:512" json:"video_url"`
	IsFeatured  bool      `gorm:"index" json:"is_featured"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// ResortInfo is the single row of resort contact and branding data.
type ResortInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Tagline      string    `gorm:"size:200" json:"tagline"`
	Description  string    `gorm:"type:text" json:"description"`
	Address      string    `gorm:"type:text" json:"address"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:160" json:"email"`
	Website      string    `gorm:"size:255" json:"website"`
	FacebookURL  string    `gorm:"size:255" json:"facebook_url"`
	InstagramURL string    `gorm:"size:255" json:"instagram_url"`
	TwitterURL   string    `gorm:"size:255" json:"twitter_url"`
	UpdatedAt    time.Time `json:"updated_at"`
}
