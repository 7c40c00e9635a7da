package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Notification is one outbound guest or staff message.
type Notification struct {
	Template  string
	Recipient string
	Subject   string
	Fields    map[string]string
}

// Notification template identifiers.
const (
	TemplateReservationConfirmation = "reservation_confirmation"
	TemplateReservationUpdate       = "reservation_update"
	TemplateInquiryAcknowledgment   = "inquiry_acknowledgment"
)

// NotificationSender attempts delivery of a notification. Senders are always
// invoked best-effort: a failed send must never fail the mutation that
// triggered it.
type NotificationSender interface {
	Send(ctx context.Context, notification Notification) error
}

// LogNotificationSender is the default provider. It records the notification
// in the structured log and reports success.
type LogNotificationSender struct {
	logger zerolog.Logger
}

// NewLogNotificationSender constructs the logging provider.
func NewLogNotificationSender(logger zerolog.Logger) *LogNotificationSender {
	return &LogNotificationSender{logger: logger.With().Str("component", "notification_sender").Logger()}
}

// Send logs the notification and returns nil.
func (s *LogNotificationSender) Send(ctx context.Context, notification Notification) error {
	s.logger.Info().
		Str("template", notification.Template).
		Str("recipient", notification.Recipient).
		Str("subject", notification.Subject).
		Msg("notification dispatched")
	return nil
}
