package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// Repository errors surfaced to services.
var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrVersionConflict     = errors.New("reservation was modified concurrently")
)

// ReservationFilter narrows reservation list queries.
type ReservationFilter struct {
	Page        int
	PageSize    int
	Search      string
	ArrivalFrom *time.Time
	DepartTo    *time.Time
}

// ReservationRepository persists reservation records.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error)
	// Update persists the reservation only when expectedVersion still matches
	// the stored row, bumping the version stamp. A mismatch returns
	// ErrVersionConflict instead of silently overwriting a concurrent edit.
	Update(ctx context.Context, reservation *models.Reservation, expectedVersion int) error
	// DeleteWithAudit removes the reservation and writes its audit snapshot in
	// a single transaction so the two can never desynchronize.
	DeleteWithAudit(ctx context.Context, id uint, entry *models.ReservationAuditLog) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	OccupiedRooms(ctx context.Context, on time.Time) (int64, error)
	ListBetween(ctx context.Context, arrivalFrom, departTo time.Time) ([]models.Reservation, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]models.Reservation, error)
	Recent(ctx context.Context, limit int) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository constructs the reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.Version == 0 {
		reservation.Version = 1
	}
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) GetByID(ctx context.Context, id uint) (models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Reservation{}, ErrReservationNotFound
	}
	return reservation, err
}

func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"guest_full_name LIKE ? OR company_name LIKE ? OR contact_number LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.ArrivalFrom != nil {
		query = query.Where("arrival_date >= ?", *filter.ArrivalFrom)
	}
	if filter.DepartTo != nil {
		query = query.Where("departure_date <= ?", *filter.DepartTo)
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

	var reservations []models.Reservation
	err := query.Preload("CreatedBy").Order("created_at DESC").Find(&reservations).Error
	return reservations, total, err
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation, expectedVersion int) error {
	reservation.Version = expectedVersion + 1
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND version = ?", reservation.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at", "created_by_id").
		Updates(reservation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrReservationNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *reservationRepository) DeleteWithAudit(ctx context.Context, id uint, entry *models.ReservationAuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Reservation{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReservationNotFound
		}
		return nil
	})
}

func (r *reservationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *reservationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&count).Error
	return count, err
}

func (r *reservationRepository) OccupiedRooms(ctx context.Context, on time.Time) (int64, error) {
	var rooms int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("arrival_date <= ? AND departure_date >= ?", on, on).
		Select("COALESCE(SUM(number_of_rooms), 0)").
		Scan(&rooms).Error
	return rooms, err
}

func (r *reservationRepository) ListBetween(ctx context.Context, arrivalFrom, departTo time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("arrival_date >= ? AND departure_date <= ?", arrivalFrom, departTo).
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) Recent(ctx context.Context, limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = 5
	}
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Limit(limit).
		Find(&reservations).Error
	return reservations, err
}
