package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// AuditLogFilter narrows audit trail queries. Entries remain queryable by the
// original reservation id and guest name after the reservation row is gone.
type AuditLogFilter struct {
	Page          int
	PageSize      int
	Action        string
	ActorID       *uint
	ReservationID *uint
	GuestName     string
	From          *time.Time
	To            *time.Time
}

// AuditLogRepository persists the append-only reservation audit trail.
// Entries are never updated or deleted once written.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.ReservationAuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]models.ReservationAuditLog, int64, error)
	ListForReservation(ctx context.Context, reservationID uint, limit int) ([]models.ReservationAuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.ReservationAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]models.ReservationAuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReservationAuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.ReservationID != nil {
		query = query.Where("original_reservation_id = ?", *filter.ReservationID)
	}
	if filter.GuestName != "" {
		query = query.Where("guest_name LIKE ?", "%"+filter.GuestName+"%")
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
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

	var entries []models.ReservationAuditLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *auditLogRepository) ListForReservation(ctx context.Context, reservationID uint, limit int) ([]models.ReservationAuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var entries []models.ReservationAuditLog
	err := r.db.WithContext(ctx).
		Where("original_reservation_id = ?", reservationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
