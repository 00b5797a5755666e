package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
	"github.com/spec-kit/internship-platform/internal/domain"
	"github.com/spec-kit/internship-platform/internal/events"
	"github.com/spec-kit/internship-platform/internal/notify"
	"github.com/spec-kit/internship-platform/internal/repository"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

type mockMessageRepo struct {
	createFunc      func(ctx context.Context, msg *domain.ContactMessage) error
	getFunc         func(ctx context.Context, id int64) (*domain.ContactMessage, error)
	markReadFunc    func(ctx context.Context, id int64) error
	listFunc        func(ctx context.Context, filter repository.MessageFilter) ([]domain.ContactMessage, error)
	countFunc       func(ctx context.Context) (*repository.StatusCounts, error)
	updateFunc      func(ctx context.Context, id int64, patch repository.MessagePatch) error
	markRepliedFunc func(ctx context.Context, id int64, adminID int64, logEntry string) error
	deleteFunc      func(ctx context.Context, id int64) error

	createCalls      int
	markReadCalls    int
	updateCalls      int
	markRepliedCalls int
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, msg)
	}
	msg.ID = 1
	msg.Status = domain.MessageStatusUnread
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id int64) error {
	m.markReadCalls++
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) List(ctx context.Context, filter repository.MessageFilter) ([]domain.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockMessageRepo) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return &repository.StatusCounts{}, nil
}

func (m *mockMessageRepo) Update(ctx context.Context, id int64, patch repository.MessagePatch) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockMessageRepo) MarkReplied(ctx context.Context, id int64, adminID int64, logEntry string) error {
	m.markRepliedCalls++
	if m.markRepliedFunc != nil {
		return m.markRepliedFunc(ctx, id, adminID, logEntry)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, email notify.Email) error
	sent     []notify.Email
}

func (m *mockMailer) Send(ctx context.Context, email notify.Email) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(ctx, email); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, email)
	return nil
}

type mockSMS struct {
	notifyFunc func(ctx context.Context, phone, body string) error
	sent       []string
}

func (m *mockSMS) Notify(ctx context.Context, phone, body string) error {
	if m.notifyFunc != nil {
		if err := m.notifyFunc(ctx, phone, body); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, body)
	return nil
}

func newTestService(repo *mockMessageRepo, mailer *mockMailer, sms *mockSMS) *ContactService {
	return NewContactService(ContactDependencies{
		MessageRepo: repo,
		Mailer:      mailer,
		SMS:         sms,
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zap.NewNop(),
		Config: config.NotificationConfig{
			AdminEmail: "admin@plateforme.fr",
			AdminPhone: "53875648",
		},
	})
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		Name:    "Ana",
		Email:   "a@b.com",
		Subject: "technique",
		Message: "1234567890",
	}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestSubmitStoresMessageAndReportsFlags(t *testing.T) {
	repo := &mockMessageRepo{}
	mailer := &mockMailer{}
	sms := &mockSMS{}
	svc := newTestService(repo, mailer, sms)

	result, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, domain.MessageStatusUnread, result.Message.Status)
	assert.True(t, result.EmailSent)
	assert.True(t, result.SMSSent)
	assert.True(t, result.ConfirmationSent)

	// admin alert plus sender confirmation
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "admin@plateforme.fr", mailer.sent[0].To)
	assert.Equal(t, "a@b.com", mailer.sent[1].To)
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0], "Ana")
}

func TestSubmitNotificationFailuresAreIsolated(t *testing.T) {
	repo := &mockMessageRepo{}
	mailer := &mockMailer{
		sendFunc: func(_ context.Context, email notify.Email) error {
			if email.To == "admin@plateforme.fr" {
				return errors.New("smtp down")
			}
			return nil
		},
	}
	sms := &mockSMS{
		notifyFunc: func(context.Context, string, string) error {
			return errors.New("gateway down")
		},
	}
	svc := newTestService(repo, mailer, sms)

	result, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	assert.False(t, result.EmailSent)
	assert.False(t, result.SMSSent)
	assert.True(t, result.ConfirmationSent)
}

func TestSubmitShortBodyRejected(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	input := validSubmitInput()
	input.Message = "trop"

	_, err := svc.Submit(context.Background(), input)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Equal(t, 0, repo.createCalls)
}

func TestSubmitMissingFieldsRejected(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	input := validSubmitInput()
	input.Email = ""

	_, err := svc.Submit(context.Background(), input)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Equal(t, 0, repo.createCalls)
}

func TestSubmitUnknownSubjectRejected(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	input := validSubmitInput()
	input.Subject = "facture"

	_, err := svc.Submit(context.Background(), input)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Equal(t, 0, repo.createCalls)
}

func TestSubmitInsertFailureAborts(t *testing.T) {
	repo := &mockMessageRepo{
		createFunc: func(context.Context, *domain.ContactMessage) error {
			return errors.New("connection reset")
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer, &mockSMS{})

	_, err := svc.Submit(context.Background(), validSubmitInput())
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
	assert.Empty(t, mailer.sent, "no notification may fire when the insert fails")
}

func unreadMessage() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:      5,
		Name:    "Ana",
		Email:   "a@b.com",
		Subject: domain.SubjectTechnique,
		Message: "1234567890",
		Status:  domain.MessageStatusUnread,
	}
}

func TestGetMarksUnreadMessageRead(t *testing.T) {
	repo := &mockMessageRepo{
		getFunc: func(context.Context, int64) (*domain.ContactMessage, error) {
			return unreadMessage(), nil
		},
	}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	msg, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.MessageStatusRead, msg.Status)
	assert.Equal(t, 1, repo.markReadCalls)
}

func TestGetIsIdempotentOnceRead(t *testing.T) {
	repo := &mockMessageRepo{
		getFunc: func(context.Context, int64) (*domain.ContactMessage, error) {
			msg := unreadMessage()
			msg.Status = domain.MessageStatusRead
			return msg, nil
		},
	}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	msg, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.MessageStatusRead, msg.Status)
	assert.Equal(t, 0, repo.markReadCalls)
}

func TestGetUnknownMessageIs404(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockMailer{}, &mockSMS{})

	_, err := svc.Get(context.Background(), 42)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockMailer{}, &mockSMS{})

	_, err := svc.List(context.Background(), ListInput{Status: "bogus"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestListStatusFilterAndCounts(t *testing.T) {
	var captured repository.MessageFilter
	repo := &mockMessageRepo{
		listFunc: func(_ context.Context, filter repository.MessageFilter) ([]domain.ContactMessage, error) {
			captured = filter
			return []domain.ContactMessage{*unreadMessage()}, nil
		},
		countFunc: func(context.Context) (*repository.StatusCounts, error) {
			return &repository.StatusCounts{Total: 4, Unread: 1, Read: 1, Replied: 1, Archived: 1}, nil
		},
	}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	result, err := svc.List(context.Background(), ListInput{Status: "unread", Limit: 10})
	require.NoError(t, err)

	require.NotNil(t, captured.Status)
	assert.Equal(t, domain.MessageStatusUnread, *captured.Status)
	assert.Equal(t, result.Counts.Total,
		result.Counts.Unread+result.Counts.Read+result.Counts.Replied+result.Counts.Archived)
}

func TestListAllSentinelDisablesStatusFilter(t *testing.T) {
	var captured repository.MessageFilter
	repo := &mockMessageRepo{
		listFunc: func(_ context.Context, filter repository.MessageFilter) ([]domain.ContactMessage, error) {
			captured = filter
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	_, err := svc.List(context.Background(), ListInput{Status: "all"})
	require.NoError(t, err)
	assert.Nil(t, captured.Status)
}

func TestUpdateWithoutFieldsRejected(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	err := svc.Update(context.Background(), 5, 7, UpdateInput{})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	bogus := "bogus"
	err := svc.Update(context.Background(), 5, 7, UpdateInput{Status: &bogus})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateToRepliedStampsActingAdmin(t *testing.T) {
	var captured repository.MessagePatch
	repo := &mockMessageRepo{
		updateFunc: func(_ context.Context, _ int64, patch repository.MessagePatch) error {
			captured = patch
			return nil
		},
	}
	svc := newTestService(repo, &mockMailer{}, &mockSMS{})

	replied := string(domain.MessageStatusReplied)
	err := svc.Update(context.Background(), 5, 7, UpdateInput{Status: &replied})
	require.NoError(t, err)

	require.NotNil(t, captured.RepliedBy)
	assert.Equal(t, int64(7), *captured.RepliedBy)
}

func TestReplyShortBodyRejectedBeforeAnyEffect(t *testing.T) {
	repo := &mockMessageRepo{}
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer, &mockSMS{})

	err := svc.Reply(context.Background(), 5, 7, "court")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 0, repo.markRepliedCalls)
}

func TestReplySendFailureBlocksTheWrite(t *testing.T) {
	repo := &mockMessageRepo{
		getFunc: func(context.Context, int64) (*domain.ContactMessage, error) {
			return unreadMessage(), nil
		},
	}
	mailer := &mockMailer{
		sendFunc: func(context.Context, notify.Email) error {
			return errors.New("smtp refused")
		},
	}
	svc := newTestService(repo, mailer, &mockSMS{})

	err := svc.Reply(context.Background(), 5, 7, "Merci pour votre retour détaillé")
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
	assert.Equal(t, 0, repo.markRepliedCalls, "a failed send must leave the message untouched")
}

func TestReplySuccessAppendsTimestampedLogEntry(t *testing.T) {
	var gotAdminID int64
	var gotLogEntry string
	repo := &mockMessageRepo{
		getFunc: func(context.Context, int64) (*domain.ContactMessage, error) {
			return unreadMessage(), nil
		},
		markRepliedFunc: func(_ context.Context, _ int64, adminID int64, logEntry string) error {
			gotAdminID = adminID
			gotLogEntry = logEntry
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer, &mockSMS{})

	reply := "Merci pour votre retour détaillé"
	err := svc.Reply(context.Background(), 5, 7, reply)
	require.NoError(t, err)

	assert.Equal(t, int64(7), gotAdminID)
	assert.Contains(t, gotLogEntry, "--- Réponse envoyée le ")
	assert.True(t, strings.HasSuffix(gotLogEntry, reply))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@b.com", mailer.sent[0].To)
	assert.Equal(t, "Re: technique", mailer.sent[0].Subject)
}

func TestReplyUnknownMessageIs404(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockMailer{}, &mockSMS{})

	err := svc.Reply(context.Background(), 42, 7, "Merci pour votre retour détaillé")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestDeleteNonexistentIDSucceeds(t *testing.T) {
	svc := newTestService(&mockMessageRepo{}, &mockMailer{}, &mockSMS{})

	err := svc.Delete(context.Background(), 9999, 7)
	assert.NoError(t, err)
}
