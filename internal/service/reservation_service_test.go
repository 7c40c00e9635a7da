package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

var (
	adminActor  = authz.Actor{ID: 1, Name: "Alice Admin", Role: "admin"}
	agentActor  = authz.Actor{ID: 2, Name: "Arun Agent", Role: "agent"}
	agent2Actor = authz.Actor{ID: 3, Name: "Bikash Agent", Role: "agent"}
	viewerActor = authz.Actor{ID: 4, Name: "Vera Viewer", Role: "viewer"}
)

type failingSender struct{}

func (failingSender) Send(context.Context, Notification) error {
	return errors.New("smtp unavailable")
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Reservation{},
		&models.ReservationAuditLog{},
		&models.Inquiry{},
	))

	users := []models.User{
		{Username: "alice", FullName: "Alice Admin", Email: "alice@banbas.test", PasswordHash: "x", Role: models.RoleAdmin, Active: true},
		{Username: "arun", FullName: "Arun Agent", Email: "arun@banbas.test", PasswordHash: "x", Role: models.RoleAgent, Active: true},
		{Username: "bikash", FullName: "Bikash Agent", Email: "bikash@banbas.test", PasswordHash: "x", Role: models.RoleAgent, Active: true},
		{Username: "vera", FullName: "Vera Viewer", Email: "vera@banbas.test", PasswordHash: "x", Role: models.RoleViewer, Active: true},
	}
	require.NoError(t, db.Create(&users).Error)

	return db
}

func setupReservationService(t *testing.T) (*gorm.DB, ReservationService) {
	t.Helper()

	db := openTestDB(t, "reservation")
	reservationRepo := repository.NewReservationRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewReservationService(reservationRepo, inquiryRepo, audit, NewLogNotificationSender(testLogger()), validate, testLogger())
	if concrete, ok := svc.(*reservationService); ok {
		concrete.now = func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) }
	}
	return db, svc
}

func validCreateRequest() dto.ReservationCreateRequest {
	return dto.ReservationCreateRequest{
		GuestFullName:   "Maya Gurung",
		ArrivalDate:     "2026-04-10",
		DepartureDate:   "2026-04-13",
		Nationality:     "Nepalese",
		RoomCategory:    models.RoomCategoryPondView,
		SingleRooms:     1,
		DoubleRooms:     2,
		MealPlan:        "bb",
		TotalAdults:     4,
		TotalChildren:   1,
		ContactNumber:   "+977-9812345678",
		PaymentMethod:   models.PaymentMethodCash,
		PaymentCurrency: "NRS",
		TotalPrice:      "36000.00",
	}
}

func TestReservationCreateComputesRoomTotals(t *testing.T) {
	db, svc := setupReservationService(t)

	result, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	require.Equal(t, 3, result.Reservation.NumberOfRooms)
	require.Equal(t, 1, result.Reservation.RoomTypes[models.RoomTypeSingle])
	require.Equal(t, 2, result.Reservation.RoomTypes[models.RoomTypeDouble])
	require.Equal(t, 3, result.Reservation.Nights)
	require.Equal(t, 5, result.Reservation.TotalGuests)
	require.Equal(t, 1, result.Reservation.Version)
	require.Equal(t, "Arun Agent", result.Reservation.BookedBy)

	var entries []models.ReservationAuditLog
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.AuditActionCreated, entries[0].Action)
	require.Equal(t, "Maya Gurung", entries[0].GuestName)
	require.Equal(t, agentActor.ID, entries[0].ActorID)
}

func TestReservationCreateDenied(t *testing.T) {
	_, svc := setupReservationService(t)

	_, err := svc.Create(context.Background(), viewerActor, validCreateRequest())
	require.ErrorIs(t, err, authz.ErrInsufficientRole)

	_, err = svc.Create(context.Background(), authz.Actor{}, validCreateRequest())
	require.ErrorIs(t, err, authz.ErrUnauthenticated)

	noRole := authz.Actor{ID: 9, Name: "Ghost"}
	_, err = svc.Create(context.Background(), noRole, validCreateRequest())
	require.ErrorIs(t, err, authz.ErrNoRoleAssigned)
}

func TestReservationCreateValidation(t *testing.T) {
	_, svc := setupReservationService(t)

	past := validCreateRequest()
	past.ArrivalDate = "2026-02-01"
	past.DepartureDate = "2026-02-03"
	_, err := svc.Create(context.Background(), agentActor, past)
	require.ErrorIs(t, err, ErrArrivalInPast)

	inverted := validCreateRequest()
	inverted.DepartureDate = inverted.ArrivalDate
	_, err = svc.Create(context.Background(), agentActor, inverted)
	require.ErrorIs(t, err, ErrInvalidDates)

	noRooms := validCreateRequest()
	noRooms.SingleRooms = 0
	noRooms.DoubleRooms = 0
	noRooms.TripleRooms = 0
	_, err = svc.Create(context.Background(), agentActor, noRooms)
	require.ErrorIs(t, err, ErrNoRoomsSelected)

	badPrice := validCreateRequest()
	badPrice.TotalPrice = "-50"
	_, err = svc.Create(context.Background(), agentActor, badPrice)
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestReservationCreateBookedByPolicy(t *testing.T) {
	_, svc := setupReservationService(t)

	req := validCreateRequest()
	req.BookedBy = "Front Desk"
	result, err := svc.Create(context.Background(), agentActor, req)
	require.NoError(t, err)
	require.Equal(t, "Arun Agent", result.Reservation.BookedBy)

	result, err = svc.Create(context.Background(), adminActor, req)
	require.NoError(t, err)
	require.Equal(t, "Front Desk", result.Reservation.BookedBy)
}

func TestReservationUpdateRecordsRoomTypeDiff(t *testing.T) {
	db, svc := setupReservationService(t)

	created, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	update := dto.ReservationUpdateRequest{ReservationCreateRequest: validCreateRequest(), Version: created.Reservation.Version}
	update.SingleRooms = 0
	result, err := svc.Update(context.Background(), agentActor, created.Reservation.ID, update)
	require.NoError(t, err)
	require.Equal(t, 2, result.Reservation.NumberOfRooms)
	require.Equal(t, 2, result.Reservation.Version)

	var entries []models.ReservationAuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionUpdated).Find(&entries).Error)
	require.Len(t, entries, 1)

	changes := entries[0].Changes
	single, ok := changes[models.RoomTypeSingle].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "1", single["old"])
	require.Equal(t, "0", single["new"])
	rooms, ok := changes["number_of_rooms"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "3", rooms["old"])
	require.Equal(t, "2", rooms["new"])
	require.Equal(t, "number_of_rooms,single", changes["fields_changed"])
}

func TestReservationUpdateNoChangesWritesNoEntry(t *testing.T) {
	db, svc := setupReservationService(t)

	created, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	update := dto.ReservationUpdateRequest{ReservationCreateRequest: validCreateRequest(), Version: created.Reservation.Version}
	result, err := svc.Update(context.Background(), agentActor, created.Reservation.ID, update)
	require.NoError(t, err)
	require.Equal(t, created.Reservation.Version, result.Reservation.Version)

	var count int64
	require.NoError(t, db.Model(&models.ReservationAuditLog{}).
		Where("action = ?", models.AuditActionUpdated).Count(&count).Error)
	require.Zero(t, count)
}

func TestReservationUpdateOwnership(t *testing.T) {
	_, svc := setupReservationService(t)

	created, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	update := dto.ReservationUpdateRequest{ReservationCreateRequest: validCreateRequest(), Version: created.Reservation.Version}
	update.GuestFullName = "Maya G."

	_, err = svc.Update(context.Background(), agent2Actor, created.Reservation.ID, update)
	require.ErrorIs(t, err, authz.ErrOwnershipViolation)

	result, err := svc.Update(context.Background(), adminActor, created.Reservation.ID, update)
	require.NoError(t, err)
	require.Equal(t, "Maya G.", result.Reservation.GuestFullName)
}

func TestReservationUpdateVersionConflict(t *testing.T) {
	_, svc := setupReservationService(t)

	created, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	first := dto.ReservationUpdateRequest{ReservationCreateRequest: validCreateRequest(), Version: created.Reservation.Version}
	first.TotalAdults = 5
	_, err = svc.Update(context.Background(), agentActor, created.Reservation.ID, first)
	require.NoError(t, err)

	stale := dto.ReservationUpdateRequest{ReservationCreateRequest: validCreateRequest(), Version: created.Reservation.Version}
	stale.TotalAdults = 6
	_, err = svc.Update(context.Background(), agentActor, created.Reservation.ID, stale)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestReservationDeleteWritesSnapshot(t *testing.T) {
	db, svc := setupReservationService(t)

	created, err := svc.Create(context.Background(), agentActor, validCreateRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), agent2Actor, created.Reservation.ID, "duplicate booking")
	require.ErrorIs(t, err, authz.ErrOwnershipViolation)

	err = svc.Delete(context.Background(), agentActor, created.Reservation.ID, "duplicate booking")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	require.Zero(t, count)

	// The trail survives deletion and remains queryable by guest name.
	var entries []models.ReservationAuditLog
	require.NoError(t, db.Where("action = ? AND guest_name = ?", models.AuditActionDeleted, "Maya Gurung").
		Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].ReservationID)
	require.Equal(t, created.Reservation.ID, entries[0].OriginalReservationID)
	require.Equal(t, "duplicate booking", entries[0].Changes["deletion_reason"])
	require.Equal(t, "1 Single, 2 Double", entries[0].Changes["room_types"])
	require.Equal(t, "36000.00", entries[0].Changes["total_price"])
}

func TestReservationDeleteNotFound(t *testing.T) {
	_, svc := setupReservationService(t)

	err := svc.Delete(context.Background(), adminActor, 4242, "")
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReservationConvertInquiry(t *testing.T) {
	db, svc := setupReservationService(t)

	inquiry := models.Inquiry{
		Name:    "Maya Gurung",
		Email:   "maya@example.com",
		Phone:   "+977-9800000000",
		Subject: "Family stay in April",
		Message: "Looking for three rooms.",
	}
	require.NoError(t, db.Create(&inquiry).Error)

	req := validCreateRequest()
	req.GuestFullName = ""
	req.ContactNumber = ""
	result, err := svc.ConvertInquiry(context.Background(), agentActor, inquiry.ID, req)
	require.NoError(t, err)
	require.Equal(t, "Maya Gurung", result.Reservation.GuestFullName)
	require.Equal(t, "+977-9800000000", result.Reservation.ContactNumber)
	require.NotNil(t, result.Reservation.SourceInquiryID)
	require.Equal(t, inquiry.ID, *result.Reservation.SourceInquiryID)

	var stored models.Inquiry
	require.NoError(t, db.First(&stored, inquiry.ID).Error)
	require.True(t, stored.IsRead)

	var entry models.ReservationAuditLog
	require.NoError(t, db.Where("action = ?", models.AuditActionCreated).First(&entry).Error)
	require.Equal(t, "Family stay in April", entry.Changes["source_inquiry_subject"])
}

func TestReservationConvertInquiryMissing(t *testing.T) {
	_, svc := setupReservationService(t)

	_, err := svc.ConvertInquiry(context.Background(), agentActor, 999, validCreateRequest())
	require.ErrorIs(t, err, ErrInquiryNotFound)
}

func TestReservationNotificationFailureIsWarning(t *testing.T) {
	db := openTestDB(t, "reservation_notify")
	reservationRepo := repository.NewReservationRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewReservationService(reservationRepo, inquiryRepo, audit, failingSender{}, validate, testLogger())
	if concrete, ok := svc.(*reservationService); ok {
		concrete.now = func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) }
	}

	req := validCreateRequest()
	req.GuestEmail = "maya@example.com"
	result, err := svc.Create(context.Background(), agentActor, req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Warning)
	require.NotZero(t, result.Reservation.ID)
}
