package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

type capturingSender struct {
	sent []Notification
}

func (s *capturingSender) Send(_ context.Context, n Notification) error {
	s.sent = append(s.sent, n)
	return nil
}

func setupInquiryService(t *testing.T, notifier NotificationSender) (*gorm.DB, InquiryService) {
	t.Helper()

	db := openTestDB(t, "inquiry")
	svc := NewInquiryService(
		repository.NewInquiryRepository(db),
		notifier,
		validator.New(validator.WithRequiredStructEnabled()),
		testLogger(),
	)
	return db, svc
}

func validInquiryRequest() dto.InquiryCreateRequest {
	return dto.InquiryCreateRequest{
		Name:    "Maya Gurung",
		Email:   "maya@example.com",
		Phone:   "+977-9812345678",
		Subject: "Availability in April",
		Message: "Do you have two pond view rooms for the second week of April?",
	}
}

func TestInquirySubmitStoresAndAcknowledges(t *testing.T) {
	sender := &capturingSender{}
	db, svc := setupInquiryService(t, sender)

	req := validInquiryRequest()
	req.Name = "  Maya Gurung  "

	resp, warning, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, warning)
	require.NotZero(t, resp.ID)
	require.Equal(t, "Maya Gurung", resp.Name)
	require.False(t, resp.IsRead)

	var stored models.Inquiry
	require.NoError(t, db.First(&stored, resp.ID).Error)
	require.Equal(t, "Maya Gurung", stored.Name)

	require.Len(t, sender.sent, 1)
	require.Equal(t, TemplateInquiryAcknowledgment, sender.sent[0].Template)
	require.Equal(t, "maya@example.com", sender.sent[0].Recipient)
}

func TestInquirySubmitValidation(t *testing.T) {
	_, svc := setupInquiryService(t, nil)

	cases := map[string]func(*dto.InquiryCreateRequest){
		"missing name":  func(r *dto.InquiryCreateRequest) { r.Name = "" },
		"bad email":     func(r *dto.InquiryCreateRequest) { r.Email = "not-an-email" },
		"short message": func(r *dto.InquiryCreateRequest) { r.Message = "hi" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validInquiryRequest()
			mutate(&req)
			_, _, err := svc.Submit(context.Background(), req)
			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
		})
	}
}

func TestInquirySubmitSenderFailureIsWarning(t *testing.T) {
	db, svc := setupInquiryService(t, failingSender{})

	resp, warning, err := svc.Submit(context.Background(), validInquiryRequest())
	require.NoError(t, err)
	require.Equal(t, "acknowledgment email could not be delivered", warning)

	var count int64
	require.NoError(t, db.Model(&models.Inquiry{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NotZero(t, resp.ID)
}

func TestInquiryListUnreadFilter(t *testing.T) {
	db, svc := setupInquiryService(t, nil)

	inquiries := []models.Inquiry{
		{Name: "Maya Gurung", Email: "maya@example.com", Subject: "April stay", Message: "Two rooms please"},
		{Name: "John Smith", Email: "john@example.com", Subject: "Airport pickup", Message: "Is a transfer available?", IsRead: true},
		{Name: "Sita Rai", Email: "sita@example.com", Subject: "Group booking", Message: "We are a party of twelve"},
	}
	require.NoError(t, db.Create(&inquiries).Error)

	all, err := svc.List(context.Background(), viewerActor, dto.InquiryListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 3, all.Pagination.TotalItems)
	require.Len(t, all.Items, 3)

	unread, err := svc.List(context.Background(), viewerActor, dto.InquiryListRequest{Unread: true})
	require.NoError(t, err)
	require.EqualValues(t, 2, unread.Pagination.TotalItems)
	for _, item := range unread.Items {
		require.False(t, item.IsRead)
	}

	_, err = svc.List(context.Background(), authz.Actor{}, dto.InquiryListRequest{})
	require.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestInquiryGetMarksRead(t *testing.T) {
	db, svc := setupInquiryService(t, nil)

	inquiry := models.Inquiry{Name: "Maya Gurung", Email: "maya@example.com", Subject: "April stay", Message: "Two rooms please"}
	require.NoError(t, db.Create(&inquiry).Error)

	resp, err := svc.Get(context.Background(), viewerActor, inquiry.ID)
	require.NoError(t, err)
	require.True(t, resp.IsRead)

	var stored models.Inquiry
	require.NoError(t, db.First(&stored, inquiry.ID).Error)
	require.True(t, stored.IsRead)

	_, err = svc.Get(context.Background(), viewerActor, 9999)
	require.ErrorIs(t, err, repository.ErrInquiryNotFound)
}
