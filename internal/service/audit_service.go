package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/observability"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// FieldChange is one field-level diff entry. Values are display strings so
// the audit record stays legible independent of later schema changes.
type FieldChange struct {
	Old string
	New string
}

// AuditService writes and queries the append-only reservation audit trail.
type AuditService interface {
	RecordCreate(ctx context.Context, reservation models.Reservation, actor authz.Actor, source *models.Inquiry) error
	// RecordUpdate writes exactly one entry for a non-empty change set and
	// nothing at all for an empty one.
	RecordUpdate(ctx context.Context, reservation models.Reservation, actor authz.Actor, changes map[string]FieldChange) error
	// BuildDeleteEntry assembles the full pre-deletion snapshot. The caller
	// persists it in the same transaction that removes the reservation row.
	BuildDeleteEntry(reservation models.Reservation, actor authz.Actor, reason string) *models.ReservationAuditLog
	List(ctx context.Context, req dto.AuditLogListRequest) (dto.AuditLogListResponse, error)
	ListForReservation(ctx context.Context, reservationID uint, limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditService constructs the audit trail service.
func NewAuditService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) RecordCreate(ctx context.Context, reservation models.Reservation, actor authz.Actor, source *models.Inquiry) error {
	changes := datatypes.JSONMap{
		"status": "Created new reservation",
	}
	if source != nil {
		changes["source_inquiry_id"] = strconv.FormatUint(uint64(source.ID), 10)
		changes["source_inquiry_subject"] = source.Subject
	}

	entry := s.newEntry(reservation, actor, models.AuditActionCreated, changes)
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Uint("reservation_id", reservation.ID).Msg("failed to record create audit entry")
		return err
	}
	observability.AuditEntries().WithLabelValues(models.AuditActionCreated).Inc()
	return nil
}

func (s *auditService) RecordUpdate(ctx context.Context, reservation models.Reservation, actor authz.Actor, changes map[string]FieldChange) error {
	if len(changes) == 0 {
		return nil
	}

	payload := datatypes.JSONMap{}
	fields := make([]string, 0, len(changes))
	for field, change := range changes {
		fields = append(fields, field)
		payload[field] = map[string]interface{}{
			"old": change.Old,
			"new": change.New,
		}
	}
	sort.Strings(fields)
	payload["fields_changed"] = strings.Join(fields, ",")

	entry := s.newEntry(reservation, actor, models.AuditActionUpdated, payload)
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Uint("reservation_id", reservation.ID).Msg("failed to record update audit entry")
		return err
	}
	observability.AuditEntries().WithLabelValues(models.AuditActionUpdated).Inc()
	return nil
}

func (s *auditService) BuildDeleteEntry(reservation models.Reservation, actor authz.Actor, reason string) *models.ReservationAuditLog {
	snapshot := datatypes.JSONMap{
		"guest_full_name":  reservation.GuestFullName,
		"company_name":     reservation.CompanyName,
		"arrival_date":     reservation.ArrivalDate.Format("2006-01-02"),
		"departure_date":   reservation.DepartureDate.Format("2006-01-02"),
		"nights":           strconv.Itoa(reservation.Nights()),
		"nationality":      reservation.Nationality,
		"room_category":    reservation.RoomCategory,
		"number_of_rooms":  strconv.Itoa(reservation.NumberOfRooms),
		"room_types":       reservation.RoomTypesDisplay(),
		"meal_plan":        reservation.MealPlan,
		"total_adults":     strconv.Itoa(reservation.TotalAdults),
		"total_children":   strconv.Itoa(reservation.TotalChildren),
		"total_guests":     strconv.Itoa(reservation.TotalGuests()),
		"booked_by":        reservation.BookedBy,
		"contact_number":   reservation.ContactNumber,
		"payment_method":   reservation.PaymentMethod,
		"payment_currency": reservation.PaymentCurrency,
		"total_price":      reservation.TotalPrice.StringFixed(2),
		"created_at":       reservation.CreatedAt.Format(time.RFC3339),
		"deleted_by":       actor.Name,
		"deletion_reason":  reason,
	}
	if reservation.CreatedBy != nil {
		snapshot["created_by"] = reservation.CreatedBy.DisplayName()
	} else {
		snapshot["created_by"] = fmt.Sprintf("user #%d", reservation.CreatedByID)
	}
	if reservation.UpdatedBy != nil {
		snapshot["updated_by"] = reservation.UpdatedBy.DisplayName()
	}
	if reservation.SourceInquiryID != nil {
		snapshot["source_inquiry_id"] = strconv.FormatUint(uint64(*reservation.SourceInquiryID), 10)
	}

	return s.newEntry(reservation, actor, models.AuditActionDeleted, snapshot)
}

func (s *auditService) List(ctx context.Context, req dto.AuditLogListRequest) (dto.AuditLogListResponse, error) {
	filter := repository.AuditLogFilter{
		Page:      req.Page,
		PageSize:  req.PageSize,
		Action:    strings.ToLower(strings.TrimSpace(req.Action)),
		GuestName: strings.TrimSpace(req.GuestName),
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if req.ActorID > 0 {
		filter.ActorID = &req.ActorID
	}
	if req.ReservationID > 0 {
		filter.ReservationID = &req.ReservationID
	}
	if from, err := parseDate(req.From); err == nil && req.From != "" {
		filter.From = &from
	}
	if to, err := parseDate(req.To); err == nil && req.To != "" {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AuditLogListResponse{}, err
	}

	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAuditLogResponse(entry))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return dto.AuditLogListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: dto.CalculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *auditService) ListForReservation(ctx context.Context, reservationID uint, limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.repo.ListForReservation(ctx, reservationID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAuditLogResponse(entry))
	}
	return items, nil
}

func (s *auditService) newEntry(reservation models.Reservation, actor authz.Actor, action string, changes datatypes.JSONMap) *models.ReservationAuditLog {
	reservationID := reservation.ID
	entry := &models.ReservationAuditLog{
		ReservationID:         &reservationID,
		OriginalReservationID: reservation.ID,
		GuestName:             reservation.GuestFullName,
		ActorID:               actor.ID,
		ActorName:             actor.Name,
		ActorRole:             actor.NormalizedRole(),
		Action:                action,
		Changes:               changes,
	}
	if action == models.AuditActionDeleted {
		// The referenced row is about to disappear; keep only the weak
		// denormalized identity.
		entry.ReservationID = nil
	}
	return entry
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
