package dto

import (
	"time"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// RoomTypeResponse serializes a public room catalog entry.
type RoomTypeResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	BasePrice    string `json:"base_price"`
	MaxOccupancy int    `json:"max_occupancy"`
	SizeSqm      int    `json:"size_sqm"`
	Amenities    string `json:"amenities"`
	ImageURL     string `json:"image_url"`
}

// AmenityResponse serializes a resort amenity.
type AmenityResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconClass   string `json:"icon_class"`
	ImageURL    string `json:"image_url"`
	IsFeatured  bool   `json:"is_featured"`
}

// GalleryItemResponse serializes a gallery entry.
type GalleryItemResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MediaType   string    `json:"media_type"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	VideoURL    string    `json:"video_url,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// GalleryListResponse wraps a paginated, category-filtered gallery.
type GalleryListResponse struct {
	Items      []GalleryItemResponse `json:"items"`
	Categories []string              `json:"categories"`
	Category   string                `json:"category"`
	Pagination PaginationMeta        `json:"pagination"`
}

// ResortInfoResponse serializes the resort singleton.
type ResortInfoResponse struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	TwitterURL   string `json:"twitter_url,omitempty"`
}

// NewRoomTypeResponse converts a model into a DTO.
func NewRoomTypeResponse(model models.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		BasePrice:    model.BasePrice.StringFixed(2),
		MaxOccupancy: model.MaxOccupancy,
		SizeSqm:      model.SizeSqm,
		Amenities:    model.Amenities,
		ImageURL:     model.ImageURL,
	}
}

// NewAmenityResponse converts a model into a DTO.
func NewAmenityResponse(model models.Amenity) AmenityResponse {
	return AmenityResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		IconClass:   model.IconClass,
		ImageURL:    model.ImageURL,
		IsFeatured:  model.IsFeatured,
	}
}

// NewGalleryItemResponse converts a model into a DTO.
func NewGalleryItemResponse(model models.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		MediaType:   model.MediaType,
		Category:    model.Category,
		ImageURL:    model.ImageURL,
		VideoURL:    model.VideoURL,
		IsFeatured:  model.IsFeatured,
		CreatedAt:   model.CreatedAt,
	}
}

// NewResortInfoResponse converts a model into a DTO.
func NewResortInfoResponse(model models.ResortInfo) ResortInfoResponse {
	return ResortInfoResponse{
		Name:         model.Name,
		Tagline:      model.Tagline,
		Description:  model.Description,
		Address:      model.Address,
		Phone:        model.Phone,
		Email:        model.Email,
		Website:      model.Website,
		FacebookURL:  model.FacebookURL,
		InstagramURL: model.InstagramURL,
		TwitterURL:   model.TwitterURL,
	}
}
