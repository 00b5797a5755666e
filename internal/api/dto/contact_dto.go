package dto

import (
	"time"

	"github.com/spec-kit/internship-platform/internal/domain"
)

// SubmitContactRequest is the public contact-form payload.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UpdateContactRequest is the admin partial-update payload.
type UpdateContactRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// ReplyContactRequest is the admin reply payload.
type ReplyContactRequest struct {
	ReplyMessage string `json:"replyMessage"`
}

// ContactMessageResponse mirrors a stored message for the admin inbox.
type ContactMessageResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         *string               `json:"phone"`
	Subject       domain.MessageSubject `json:"subject"`
	Message       string                `json:"message"`
	Status        domain.MessageStatus  `json:"status"`
	AdminNotes    *string               `json:"admin_notes"`
	CreatedAt     time.Time             `json:"created_at"`
	RepliedAt     *time.Time            `json:"replied_at"`
	RepliedBy     *int64                `json:"replied_by"`
	RepliedByName *string               `json:"replied_by_name"`
}
