package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/observability"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// Reservation service errors.
var (
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrVersionConflict     = repository.ErrVersionConflict
	ErrInquiryNotFound     = repository.ErrInquiryNotFound
	ErrInvalidDates        = errors.New("departure date must be after arrival date")
	ErrArrivalInPast       = errors.New("arrival date cannot be in the past")
	ErrNoRoomsSelected     = errors.New("at least one room type must be selected")
	ErrInvalidPrice        = errors.New("total price must be a non-negative decimal")
)

// ReservationResult is a mutation outcome plus a non-fatal warning (for
// example a failed notification send) to surface to the actor.
type ReservationResult struct {
	Reservation dto.ReservationResponse
	Warning     string
}

// ReservationService implements the gated reservation lifecycle. Every
// mutation passes the authorization gate and produces exactly one audit
// entry.
type ReservationService interface {
	Create(ctx context.Context, actor authz.Actor, req dto.ReservationCreateRequest) (ReservationResult, error)
	Get(ctx context.Context, actor authz.Actor, id uint) (dto.ReservationResponse, []dto.AuditLogResponse, error)
	List(ctx context.Context, actor authz.Actor, req dto.ReservationListRequest) (dto.ReservationListResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uint, req dto.ReservationUpdateRequest) (ReservationResult, error)
	Delete(ctx context.Context, actor authz.Actor, id uint, reason string) error
	ConvertInquiry(ctx context.Context, actor authz.Actor, inquiryID uint, req dto.ReservationCreateRequest) (ReservationResult, error)
}

type reservationService struct {
	reservations repository.ReservationRepository
	inquiries    repository.InquiryRepository
	audit        AuditService
	notifier     NotificationSender
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewReservationService constructs the reservation service.
func NewReservationService(
	reservations repository.ReservationRepository,
	inquiries repository.InquiryRepository,
	audit AuditService,
	notifier NotificationSender,
	validate *validator.Validate,
	logger zerolog.Logger,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		inquiries:    inquiries,
		audit:        audit,
		notifier:     notifier,
		validator:    validate,
		logger:       logger.With().Str("component", "reservation_service").Logger(),
		now:          time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, actor authz.Actor, req dto.ReservationCreateRequest) (ReservationResult, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAgentWrite); err != nil {
		return ReservationResult{}, err
	}
	return s.create(ctx, actor, req, nil)
}

func (s *reservationService) ConvertInquiry(ctx context.Context, actor authz.Actor, inquiryID uint, req dto.ReservationCreateRequest) (ReservationResult, error) {
	if err := authz.Authorize(&actor, authz.CapabilityAgentWrite); err != nil {
		return ReservationResult{}, err
	}

	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		return ReservationResult{}, err
	}

	if strings.TrimSpace(req.GuestFullName) == "" {
		req.GuestFullName = inquiry.Name
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		req.ContactNumber = inquiry.Phone
	}
	if strings.TrimSpace(req.GuestEmail) == "" {
		req.GuestEmail = inquiry.Email
	}

	result, err := s.create(ctx, actor, req, &inquiry)
	if err != nil {
		return ReservationResult{}, err
	}

	if err := s.inquiries.MarkRead(ctx, inquiry.ID); err != nil {
		s.logger.Warn().Err(err).Uint("inquiry_id", inquiry.ID).Msg("failed to mark converted inquiry read")
	}
	return result, nil
}

func (s *reservationService) create(ctx context.Context, actor authz.Actor, req dto.ReservationCreateRequest, source *models.Inquiry) (ReservationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return ReservationResult{}, err
	}

	reservation, err := s.buildReservation(req, true)
	if err != nil {
		return ReservationResult{}, err
	}

	reservation.CreatedByID = actor.ID
	if strings.TrimSpace(req.BookedBy) != "" && actor.NormalizedRole() == models.RoleAdmin {
		reservation.BookedBy = strings.TrimSpace(req.BookedBy)
	} else {
		// Non-admins cannot book on someone else's behalf.
		reservation.BookedBy = actor.Name
	}
	if source != nil {
		sourceID := source.ID
		reservation.SourceInquiryID = &sourceID
	}

	if err := s.reservations.Create(ctx, &reservation); err != nil {
		return ReservationResult{}, err
	}

	if err := s.audit.RecordCreate(ctx, reservation, actor, source); err != nil {
		// The reservation write is already committed; an audit failure is a
		// serious condition and is propagated rather than swallowed.
		return ReservationResult{}, fmt.Errorf("reservation created but audit entry failed: %w", err)
	}

	warning := s.notify(ctx, Notification{
		Template:  TemplateReservationConfirmation,
		Recipient: req.GuestEmail,
		Subject:   fmt.Sprintf("Reservation Confirmation - %s", reservation.GuestFullName),
		Fields: map[string]string{
			"guest":     reservation.GuestFullName,
			"arrival":   reservation.ArrivalDate.Format("2006-01-02"),
			"departure": reservation.DepartureDate.Format("2006-01-02"),
		},
	})

	stored, err := s.reservations.GetByID(ctx, reservation.ID)
	if err != nil {
		return ReservationResult{}, err
	}
	return ReservationResult{Reservation: dto.NewReservationResponse(stored), Warning: warning}, nil
}

func (s *reservationService) Get(ctx context.Context, actor authz.Actor, id uint) (dto.ReservationResponse, []dto.AuditLogResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.ReservationResponse{}, nil, err
	}

	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return dto.ReservationResponse{}, nil, err
	}

	trail, err := s.audit.ListForReservation(ctx, id, 10)
	if err != nil {
		return dto.ReservationResponse{}, nil, err
	}
	return dto.NewReservationResponse(reservation), trail, nil
}

func (s *reservationService) List(ctx context.Context, actor authz.Actor, req dto.ReservationListRequest) (dto.ReservationListResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.ReservationListResponse{}, err
	}

	filter := repository.ReservationFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   strings.TrimSpace(req.Search),
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if from, err := parseDate(req.DateFrom); err == nil && req.DateFrom != "" {
		filter.ArrivalFrom = &from
	}
	if to, err := parseDate(req.DateTo); err == nil && req.DateTo != "" {
		filter.DepartTo = &to
	}

	reservations, total, err := s.reservations.List(ctx, filter)
	if err != nil {
		return dto.ReservationListResponse{}, err
	}

	items := make([]dto.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		items = append(items, dto.NewReservationResponse(reservation))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return dto.ReservationListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: dto.CalculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *reservationService) Update(ctx context.Context, actor authz.Actor, id uint, req dto.ReservationUpdateRequest) (ReservationResult, error) {
	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return ReservationResult{}, err
	}

	if err := authz.AuthorizeOwner(&actor, authz.CapabilityAgentWrite, current.CreatedByID); err != nil {
		return ReservationResult{}, err
	}

	if err := s.validator.Struct(req); err != nil {
		return ReservationResult{}, err
	}

	// Arrival dates in the past are legal on edits of existing stays.
	updated, err := s.buildReservation(req.ReservationCreateRequest, false)
	if err != nil {
		return ReservationResult{}, err
	}

	if updated.BookedBy == "" || actor.NormalizedRole() != models.RoleAdmin {
		updated.BookedBy = current.BookedBy
	}

	changes := diffReservations(current, updated)
	if len(changes) == 0 {
		return ReservationResult{Reservation: dto.NewReservationResponse(current)}, nil
	}

	updated.ID = current.ID
	updated.CreatedByID = current.CreatedByID
	updated.SourceInquiryID = current.SourceInquiryID
	updated.CreatedAt = current.CreatedAt
	actorID := actor.ID
	updated.UpdatedByID = &actorID

	if err := s.reservations.Update(ctx, &updated, req.Version); err != nil {
		return ReservationResult{}, err
	}

	if err := s.audit.RecordUpdate(ctx, updated, actor, changes); err != nil {
		return ReservationResult{}, fmt.Errorf("reservation updated but audit entry failed: %w", err)
	}

	warning := s.notify(ctx, Notification{
		Template:  TemplateReservationUpdate,
		Recipient: req.GuestEmail,
		Subject:   fmt.Sprintf("Reservation Update - %s", updated.GuestFullName),
		Fields:    map[string]string{"guest": updated.GuestFullName},
	})

	stored, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return ReservationResult{}, err
	}
	return ReservationResult{Reservation: dto.NewReservationResponse(stored), Warning: warning}, nil
}

func (s *reservationService) Delete(ctx context.Context, actor authz.Actor, id uint, reason string) error {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.AuthorizeOwner(&actor, authz.CapabilityAgentWrite, reservation.CreatedByID); err != nil {
		return err
	}

	entry := s.audit.BuildDeleteEntry(reservation, actor, strings.TrimSpace(reason))
	if err := s.reservations.DeleteWithAudit(ctx, id, entry); err != nil {
		return err
	}
	observability.AuditEntries().WithLabelValues(models.AuditActionDeleted).Inc()

	s.logger.Info().
		Uint("reservation_id", id).
		Uint("actor_id", actor.ID).
		Str("guest", reservation.GuestFullName).
		Msg("reservation deleted")
	return nil
}

func (s *reservationService) buildReservation(req dto.ReservationCreateRequest, enforceFutureArrival bool) (models.Reservation, error) {
	arrival, err := parseDate(req.ArrivalDate)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("invalid arrival date: %w", err)
	}
	departure, err := parseDate(req.DepartureDate)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("invalid departure date: %w", err)
	}
	if !arrival.Before(departure) {
		return models.Reservation{}, ErrInvalidDates
	}
	if enforceFutureArrival {
		today := s.now().Truncate(24 * time.Hour)
		if arrival.Before(today) {
			return models.Reservation{}, ErrArrivalInPast
		}
	}

	totalRooms := req.SingleRooms + req.DoubleRooms + req.TripleRooms
	if totalRooms <= 0 {
		return models.Reservation{}, ErrNoRoomsSelected
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.TotalPrice))
	if err != nil || price.IsNegative() {
		return models.Reservation{}, ErrInvalidPrice
	}

	return models.Reservation{
		GuestFullName: strings.TrimSpace(req.GuestFullName),
		CompanyName:   strings.TrimSpace(req.CompanyName),
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Nationality:   strings.TrimSpace(req.Nationality),
		RoomCategory:  req.RoomCategory,
		NumberOfRooms: totalRooms,
		RoomTypes: datatypes.JSONMap{
			models.RoomTypeSingle: req.SingleRooms,
			models.RoomTypeDouble: req.DoubleRooms,
			models.RoomTypeTriple: req.TripleRooms,
		},
		MealPlan:        req.MealPlan,
		TotalAdults:     req.TotalAdults,
		TotalChildren:   req.TotalChildren,
		BookedBy:        strings.TrimSpace(req.BookedBy),
		ContactNumber:   strings.TrimSpace(req.ContactNumber),
		PaymentMethod:   req.PaymentMethod,
		PaymentCurrency: strings.ToUpper(strings.TrimSpace(req.PaymentCurrency)),
		TotalPrice:      price,
	}, nil
}

// diffReservations resolves the field-level diff at the domain level: the
// per-room-type form counters are compared against the stored room-type map,
// not against raw form field names.
func diffReservations(current, updated models.Reservation) map[string]FieldChange {
	changes := map[string]FieldChange{}

	record := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes[field] = FieldChange{Old: oldValue, New: newValue}
		}
	}

	record("guest_full_name", current.GuestFullName, updated.GuestFullName)
	record("company_name", current.CompanyName, updated.CompanyName)
	record("arrival_date", current.ArrivalDate.Format("2006-01-02"), updated.ArrivalDate.Format("2006-01-02"))
	record("departure_date", current.DepartureDate.Format("2006-01-02"), updated.DepartureDate.Format("2006-01-02"))
	record("nationality", current.Nationality, updated.Nationality)
	record("room_category", current.RoomCategory, updated.RoomCategory)
	record("meal_plan", current.MealPlan, updated.MealPlan)
	record("total_adults", strconv.Itoa(current.TotalAdults), strconv.Itoa(updated.TotalAdults))
	record("total_children", strconv.Itoa(current.TotalChildren), strconv.Itoa(updated.TotalChildren))
	record("contact_number", current.ContactNumber, updated.ContactNumber)
	record("payment_method", current.PaymentMethod, updated.PaymentMethod)
	record("payment_currency", current.PaymentCurrency, updated.PaymentCurrency)
	record("total_price", current.TotalPrice.StringFixed(2), updated.TotalPrice.StringFixed(2))
	record("booked_by", current.BookedBy, updated.BookedBy)

	for _, roomType := range models.RoomTypeOrder {
		record(roomType, strconv.Itoa(current.RoomTypeCount(roomType)), strconv.Itoa(updated.RoomTypeCount(roomType)))
	}
	record("number_of_rooms", strconv.Itoa(current.NumberOfRooms), strconv.Itoa(updated.RoomTypeTotal()))

	return changes
}

// notify dispatches a best-effort notification and converts any failure into
// a warning string for the actor; it never returns an error.
func (s *reservationService) notify(ctx context.Context, notification Notification) string {
	if s.notifier == nil || notification.Recipient == "" {
		return ""
	}
	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.Warn().Err(err).
			Str("template", notification.Template).
			Str("recipient", notification.Recipient).
			Msg("notification delivery failed")
		return "notification could not be delivered"
	}
	return ""
}
