package domain

import "time"

// MessageStatus enumerates lifecycle states for contact messages.
type MessageStatus string

const (
	MessageStatusUnread   MessageStatus = "unread"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusReplied  MessageStatus = "replied"
	MessageStatusArchived MessageStatus = "archived"
)

// MessageStatuses lists every valid status, in lifecycle order.
var MessageStatuses = []MessageStatus{
	MessageStatusUnread,
	MessageStatusRead,
	MessageStatusReplied,
	MessageStatusArchived,
}

// Valid reports whether the status is one of the known values.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusUnread, MessageStatusRead, MessageStatusReplied, MessageStatusArchived:
		return true
	}
	return false
}

// MessageSubject enumerates the categories offered on the public contact form.
type MessageSubject string

const (
	SubjectQuestion   MessageSubject = "question"
	SubjectTechnique  MessageSubject = "technique"
	SubjectStage      MessageSubject = "stage"
	SubjectCompte     MessageSubject = "compte"
	SubjectSuggestion MessageSubject = "suggestion"
	SubjectAutre      MessageSubject = "autre"
)

// Valid reports whether the subject belongs to the form's category set.
func (s MessageSubject) Valid() bool {
	switch s {
	case SubjectQuestion, SubjectTechnique, SubjectStage, SubjectCompte, SubjectSuggestion, SubjectAutre:
		return true
	}
	return false
}

// MinMessageLength is the minimum accepted body length for submissions and replies.
const MinMessageLength = 10

// ContactMessage is the aggregate for inbound contact-form messages.
type ContactMessage struct {
	ID            int64
	Name          string
	Email         string
	Phone         *string
	Subject       MessageSubject
	Message       string
	Status        MessageStatus
	AdminNotes    *string
	CreatedAt     time.Time
	RepliedAt     *time.Time
	RepliedBy     *int64
	RepliedByName *string
}
