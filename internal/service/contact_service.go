package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
	"github.com/spec-kit/internship-platform/internal/domain"
	"github.com/spec-kit/internship-platform/internal/events"
	"github.com/spec-kit/internship-platform/internal/notify"
	"github.com/spec-kit/internship-platform/internal/repository"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

const (
	msgNotFound        = "Message non trouvé"
	msgInvalidStatus   = "Statut invalide"
	msgNoModification  = "Aucune modification"
	msgFieldsRequired  = "Tous les champs sont requis (name, email, subject, message)"
	msgBodyTooShort    = "Le message doit contenir au moins 10 caractères"
	msgReplyTooShort   = "La réponse doit contenir au moins 10 caractères"
	msgInvalidSubject  = "Sujet invalide"
	msgEmailSendFailed = "Erreur lors de l'envoi de l'email"
	msgSaveFailed      = "Erreur lors de l'enregistrement du message"
)

// ContactService coordinates the contact-message lifecycle: public
// submission with notification fan-out, the admin inbox, replies and
// deletion.
type ContactService struct {
	messages   repository.ContactMessageRepository
	mailer     notify.EmailSender
	sms        notify.SMSNotifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// ContactDependencies bundles collaborators for the contact service.
type ContactDependencies struct {
	MessageRepo repository.ContactMessageRepository
	Mailer      notify.EmailSender
	SMS         notify.SMSNotifier
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Config      config.NotificationConfig
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		messages:   deps.MessageRepo,
		mailer:     deps.Mailer,
		sms:        deps.SMS,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		cfg:        deps.Config,
	}
}

// SubmitInput is the public contact-form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SubmissionResult reports the stored message and the outcome of each
// best-effort notification.
type SubmissionResult struct {
	Message          *domain.ContactMessage
	EmailSent        bool
	SMSSent          bool
	ConfirmationSent bool
}

// Submit validates and stores an inbound message, then fans out the admin
// email, the admin SMS and the sender confirmation. The insert must
// succeed; each notification failure is logged and reported as a flag
// without failing the submission.
func (s *ContactService) Submit(ctx context.Context, input SubmitInput) (*SubmissionResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := domain.MessageSubject(strings.TrimSpace(input.Subject))
	body := input.Message

	if name == "" || email == "" || subject == "" || strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError(msgFieldsRequired)
	}
	if utf8.RuneCountInString(body) < domain.MinMessageLength {
		return nil, apperrors.NewValidationError(msgBodyTooShort)
	}
	if !subject.Valid() {
		return nil, apperrors.NewValidationError(msgInvalidSubject)
	}

	msg := &domain.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		msg.Phone = &phone
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("contact message insert failed", zap.Error(err))
		return nil, &apperrors.DomainError{
			Code:       "PERSISTENCE_FAILED",
			Message:    msgSaveFailed,
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}

	result := &SubmissionResult{Message: msg}
	result.EmailSent = s.trySend(ctx, "admin email", func() error {
		return s.mailer.Send(ctx, notify.AdminAlert(s.cfg.AdminEmail, msg))
	})
	result.SMSSent = s.trySend(ctx, "admin sms", func() error {
		return s.sms.Notify(ctx, s.cfg.AdminPhone, notify.AdminSMSAlert(msg))
	})
	result.ConfirmationSent = s.trySend(ctx, "confirmation email", func() error {
		return s.mailer.Send(ctx, notify.SubmissionConfirmation(msg))
	})

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactMessageReceived,
		MessageID: msg.ID,
		Payload: events.MessageReceivedPayload{
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
		},
	})

	return result, nil
}

// trySend isolates one best-effort notification.
func (s *ContactService) trySend(_ context.Context, label string, send func() error) bool {
	if err := send(); err != nil {
		s.logger.Warn("notification failed", zap.String("kind", label), zap.Error(err))
		return false
	}
	return true
}

// ListInput carries inbox filters as received from the query string.
type ListInput struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// ListResult is one inbox page plus whole-table status counts.
type ListResult struct {
	Messages []domain.ContactMessage
	Counts   *repository.StatusCounts
}

// List returns the filtered, paginated inbox. Counts are computed over the
// entire table, independent of the active filter.
func (s *ContactService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	filter := repository.MessageFilter{Limit: input.Limit, Offset: input.Offset}

	if input.Status != "" && input.Status != "all" {
		status := domain.MessageStatus(input.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError(msgInvalidStatus)
		}
		filter.Status = &status
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		filter.Search = &search
	}

	messages, err := s.messages.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	counts, err := s.messages.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &ListResult{Messages: messages, Counts: counts}, nil
}

// Get fetches one message. Opening an unread message marks it read: the
// read and the conditional write are two steps, so concurrent opens settle
// on read without a double transition.
func (s *ContactService) Get(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(msgNotFound)
		}
		return nil, apperrors.MapError(err)
	}

	if msg.Status == domain.MessageStatusUnread {
		if err := s.messages.MarkRead(ctx, id); err != nil {
			return nil, apperrors.MapError(err)
		}
		msg.Status = domain.MessageStatusRead
	}

	return msg, nil
}

// UpdateInput is the admin patch payload. AdminNotes replaces the stored
// notes verbatim; the reply flow appends instead.
type UpdateInput struct {
	Status     *string
	AdminNotes *string
}

// Update applies a partial status/notes update. Transitioning into replied
// stamps replied_at and replied_by as part of the same update.
func (s *ContactService) Update(ctx context.Context, id int64, adminID int64, input UpdateInput) error {
	patch := repository.MessagePatch{AdminNotes: input.AdminNotes}

	if input.Status != nil {
		status := domain.MessageStatus(*input.Status)
		if !status.Valid() {
			return apperrors.NewValidationError(msgInvalidStatus)
		}
		patch.Status = &status
		if status == domain.MessageStatusReplied {
			patch.RepliedBy = &adminID
		}
	}

	if patch.Status == nil && patch.AdminNotes == nil {
		return apperrors.NewValidationError(msgNoModification)
	}

	if err := s.messages.Update(ctx, id, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(msgNotFound)
		}
		return apperrors.MapError(err)
	}

	if patch.Status != nil {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventContactStatusChanged,
			MessageID: id,
			AdminID:   &adminID,
			Payload:   events.StatusChangedPayload{NewStatus: *patch.Status},
		})
	}

	return nil
}

// Reply emails the sender and closes the message. The send blocks the
// write: a failed delivery leaves the message untouched.
func (s *ContactService) Reply(ctx context.Context, id int64, adminID int64, replyBody string) error {
	replyBody = strings.TrimSpace(replyBody)
	if utf8.RuneCountInString(replyBody) < domain.MinMessageLength {
		return apperrors.NewValidationError(msgReplyTooShort)
	}

	original, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(msgNotFound)
		}
		return apperrors.MapError(err)
	}

	if err := s.mailer.Send(ctx, notify.Reply(original, replyBody)); err != nil {
		return apperrors.NewNotificationError(msgEmailSendFailed, err)
	}

	logEntry := fmt.Sprintf("\n--- Réponse envoyée le %s ---\n%s",
		time.Now().Format("2006-01-02 15:04:05"), replyBody)
	if err := s.messages.MarkReplied(ctx, id, adminID, logEntry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(msgNotFound)
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactMessageReplied,
		MessageID: id,
		AdminID:   &adminID,
		Payload: events.MessageRepliedPayload{
			RecipientEmail: original.Email,
			ReplyPreview:   notify.TruncateExcerpt(replyBody, 80),
		},
	})

	return nil
}

// Delete removes a message unconditionally. Deleting an absent id succeeds.
func (s *ContactService) Delete(ctx context.Context, id int64, adminID int64) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactMessageDeleted,
		MessageID: id,
		AdminID:   &adminID,
	})
	return nil
}

func (s *ContactService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
