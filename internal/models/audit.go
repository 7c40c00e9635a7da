package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions recorded for reservation mutations.
const (
	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// ReservationAuditLog is the append-only record of a reservation mutation.
// The reservation reference is weak: when the reservation row is deleted the
// entry survives and OriginalReservationID plus GuestName keep it searchable.
type ReservationAuditLog struct {
	ID                    uint              `gorm:"primaryKey" json:"id"`
	ReservationID         *uint             `gorm:"index" json:"reservation_id"`
	OriginalReservationID uint              `gorm:"not null;index" json:"original_reservation_id"`
	GuestName             string            `gorm:"size:200;index" json:"guest_name"`
	ActorID               uint              `gorm:"not null;index" json:"actor_id"`
	ActorName             string            `gorm:"size:200" json:"actor_name"`
	ActorRole             string            `gorm:"size:10" json:"actor_role"`
	Action                string            `gorm:"size:20;not null;index" json:"action"`
	Changes               datatypes.JSONMap `gorm:"type:json" json:"changes"`
	CreatedAt             time.Time         `gorm:"index" json:"created_at"`
}
