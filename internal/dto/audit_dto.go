package dto

import (
	"time"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// AuditLogListRequest captures audit trail query filters.
type AuditLogListRequest struct {
	Page          int
	PageSize      int
	Action        string
	ActorID       uint
	ReservationID uint
	GuestName     string
	From          string
	To            string
}

// AuditLogResponse serializes one audit entry.
type AuditLogResponse struct {
	ID                    uint                   `json:"id"`
	ReservationID         *uint                  `json:"reservation_id"`
	OriginalReservationID uint                   `json:"original_reservation_id"`
	GuestName             string                 `json:"guest_name"`
	ActorID               uint                   `json:"actor_id"`
	ActorName             string                 `json:"actor_name"`
	ActorRole             string                 `json:"actor_role"`
	Action                string                 `json:"action"`
	Changes               map[string]interface{} `json:"changes"`
	CreatedAt             time.Time              `json:"created_at"`
}

// AuditLogListResponse wraps a paginated audit trail.
type AuditLogListResponse struct {
	Items      []AuditLogResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewAuditLogResponse converts a model into a DTO.
func NewAuditLogResponse(model models.ReservationAuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:                    model.ID,
		ReservationID:         model.ReservationID,
		OriginalReservationID: model.OriginalReservationID,
		GuestName:             model.GuestName,
		ActorID:               model.ActorID,
		ActorName:             model.ActorName,
		ActorRole:             model.ActorRole,
		Action:                model.Action,
		Changes:               model.Changes,
		CreatedAt:             model.CreatedAt,
	}
}
