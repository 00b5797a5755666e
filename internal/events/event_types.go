package events

import (
	"time"

	"github.com/spec-kit/internship-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactMessageReceived EventType = "contact_message_received"
	EventContactMessageReplied  EventType = "contact_message_replied"
	EventContactStatusChanged   EventType = "contact_status_changed"
	EventContactMessageDeleted  EventType = "contact_message_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MessageID int64       `json:"message_id"`
	AdminID   *int64      `json:"admin_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageReceivedPayload payload.
type MessageReceivedPayload struct {
	Name    string                `json:"name"`
	Email   string                `json:"email"`
	Subject domain.MessageSubject `json:"subject"`
}

// MessageRepliedPayload payload.
type MessageRepliedPayload struct {
	RecipientEmail string `json:"recipient_email"`
	ReplyPreview   string `json:"reply_preview"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.MessageStatus `json:"old_status"`
	NewStatus domain.MessageStatus `json:"new_status"`
}
