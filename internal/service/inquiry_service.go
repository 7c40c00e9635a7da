package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

// InquiryService accepts public contact submissions and exposes them to the
// backoffice.
type InquiryService interface {
	// Submit stores a public contact form entry and sends a best-effort
	// acknowledgment. The returned warning is non-empty when the
	// acknowledgment could not be delivered.
	Submit(ctx context.Context, req dto.InquiryCreateRequest) (dto.InquiryResponse, string, error)
	List(ctx context.Context, actor authz.Actor, req dto.InquiryListRequest) (dto.InquiryListResponse, error)
	// Get returns the inquiry and marks it read, mirroring the backoffice
	// detail view.
	Get(ctx context.Context, actor authz.Actor, id uint) (dto.InquiryResponse, error)
}

type inquiryService struct {
	repo      repository.InquiryRepository
	notifier  NotificationSender
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewInquiryService constructs the inquiry service.
func NewInquiryService(repo repository.InquiryRepository, notifier NotificationSender, validate *validator.Validate, logger zerolog.Logger) InquiryService {
	return &inquiryService{
		repo:      repo,
		notifier:  notifier,
		validator: validate,
		logger:    logger.With().Str("component", "inquiry_service").Logger(),
	}
}

func (s *inquiryService) Submit(ctx context.Context, req dto.InquiryCreateRequest) (dto.InquiryResponse, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.InquiryResponse{}, "", err
	}

	inquiry := models.Inquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, &inquiry); err != nil {
		return dto.InquiryResponse{}, "", err
	}

	warning := ""
	if s.notifier != nil {
		err := s.notifier.Send(ctx, Notification{
			Template:  TemplateInquiryAcknowledgment,
			Recipient: inquiry.Email,
			Subject:   fmt.Sprintf("Thanks, %s! We've received your inquiry", inquiry.Name),
			Fields:    map[string]string{"name": inquiry.Name},
		})
		if err != nil {
			s.logger.Warn().Err(err).Uint("inquiry_id", inquiry.ID).Msg("acknowledgment delivery failed")
			warning = "acknowledgment email could not be delivered"
		}
	}

	return dto.NewInquiryResponse(inquiry), warning, nil
}

func (s *inquiryService) List(ctx context.Context, actor authz.Actor, req dto.InquiryListRequest) (dto.InquiryListResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.InquiryListResponse{}, err
	}

	filter := repository.InquiryFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Unread:   req.Unread,
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	inquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.InquiryListResponse{}, err
	}

	items := make([]dto.InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		items = append(items, dto.NewInquiryResponse(inquiry))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return dto.InquiryListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: dto.CalculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *inquiryService) Get(ctx context.Context, actor authz.Actor, id uint) (dto.InquiryResponse, error) {
	if err := authz.Authorize(&actor, authz.CapabilityViewerRead); err != nil {
		return dto.InquiryResponse{}, err
	}

	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.InquiryResponse{}, err
	}

	if !inquiry.IsRead {
		if err := s.repo.MarkRead(ctx, inquiry.ID); err != nil {
			s.logger.Warn().Err(err).Uint("inquiry_id", inquiry.ID).Msg("failed to mark inquiry read")
		} else {
			inquiry.IsRead = true
		}
	}
	return dto.NewInquiryResponse(inquiry), nil
}
