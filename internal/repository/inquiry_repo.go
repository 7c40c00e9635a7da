package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// ErrInquiryNotFound indicates a missing inquiry record.
var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryFilter narrows inquiry list queries.
type InquiryFilter struct {
	Page     int
	PageSize int
	Unread   bool
}

// InquiryRepository persists contact form submissions.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (models.Inquiry, error)
	List(ctx context.Context, filter InquiryFilter) ([]models.Inquiry, int64, error)
	MarkRead(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	RecentUnread(ctx context.Context, limit int) ([]models.Inquiry, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository constructs the inquiry repository.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).First(&inquiry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Inquiry{}, ErrInquiryNotFound
	}
	return inquiry, err
}

func (r *inquiryRepository) List(ctx context.Context, filter InquiryFilter) ([]models.Inquiry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Inquiry{})
	if filter.Unread {
		query = query.Where("is_read = ?", false)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var inquiries []models.Inquiry
	err := query.Order("created_at DESC").Find(&inquiries).Error
	return inquiries, total, err
}

func (r *inquiryRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Inquiry{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *inquiryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&count).Error
	return count, err
}

func (r *inquiryRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *inquiryRepository) RecentUnread(ctx context.Context, limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 5
	}
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).
		Where("is_read = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	return inquiries, err
}
