package dto

import (
	"time"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// InquiryCreateRequest is the public contact form payload.
type InquiryCreateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=5"`
}

// InquiryListRequest captures inquiry list filters.
type InquiryListRequest struct {
	Page     int
	PageSize int
	Unread   bool
}

// InquiryResponse serializes an inquiry for backoffice clients.
type InquiryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryListResponse wraps a paginated inquiry list.
type InquiryListResponse struct {
	Items      []InquiryResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewInquiryResponse converts a model into a DTO.
func NewInquiryResponse(model models.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Phone:     model.Phone,
		Subject:   model.Subject,
		Message:   model.Message,
		IsRead:    model.IsRead,
		CreatedAt: model.CreatedAt,
	}
}
