package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// ErrRoomTypeNotFound indicates a missing catalog entry.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ContentRepository serves the public marketing catalog: rooms, amenities,
// gallery media, and the resort information singleton.
type ContentRepository interface {
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	GetRoomType(ctx context.Context, id uint) (models.RoomType, error)
	ListAmenities(ctx context.Context) ([]models.Amenity, error)
	ListGallery(ctx context.Context, category string, page, pageSize int) ([]models.GalleryItem, int64, error)
	GalleryCategories(ctx context.Context) ([]string, error)
	ResortInfo(ctx context.Context) (models.ResortInfo, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository constructs the public content repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var rooms []models.RoomType
	err := r.db.WithContext(ctx).Order("base_price ASC").Find(&rooms).Error
	return rooms, err
}

func (r *contentRepository) GetRoomType(ctx context.Context, id uint) (models.RoomType, error) {
	var room models.RoomType
	err := r.db.WithContext(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoomType{}, ErrRoomTypeNotFound
	}
	return room, err
}

func (r *contentRepository) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	var amenities []models.Amenity
	err := r.db.WithContext(ctx).
		Order("is_featured DESC, name ASC").
		Find(&amenities).Error
	return amenities, err
}

func (r *contentRepository) ListGallery(ctx context.Context, category string, page, pageSize int) ([]models.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryItem{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var items []models.GalleryItem
	err := query.Order("is_featured DESC, created_at DESC").Find(&items).Error
	return items, total, err
}

func (r *contentRepository) GalleryCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.GalleryItem{}).
		Distinct("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *contentRepository) ResortInfo(ctx context.Context) (models.ResortInfo, error) {
	var info models.ResortInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ResortInfo{}, nil
	}
	return info, err
}
