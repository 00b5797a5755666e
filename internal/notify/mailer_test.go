package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
)

func TestSendWithoutConfiguredHostFails(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{}, zap.NewNop())

	err := mailer.Send(context.Background(), Email{To: "a@b.com", Subject: "test"})
	require.Error(t, err)
}

func TestSendWithoutRecipientFails(t *testing.T) {
	mailer := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: "587"}, zap.NewNop())

	err := mailer.Send(context.Background(), Email{Subject: "test"})
	require.Error(t, err)
}

func TestBuildMIMEMessageContainsBothVariants(t *testing.T) {
	payload := string(buildMIMEMessage("noreply@example.com", Email{
		To:      "a@b.com",
		Subject: "Confirmation de réception",
		Text:    "variante texte",
		HTML:    "<p>variante html</p>",
	}))

	assert.Contains(t, payload, "From: noreply@example.com\r\n")
	assert.Contains(t, payload, "To: a@b.com\r\n")
	assert.Contains(t, payload, "MIME-Version: 1.0\r\n")
	assert.Contains(t, payload, "Content-Type: multipart/alternative")
	assert.Contains(t, payload, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, payload, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, payload, "variante texte")
	assert.Contains(t, payload, "<p>variante html</p>")
	// closing boundary
	assert.Contains(t, payload, "--"+mimeBoundary+"--")
}

func TestBuildMIMEMessageEncodesNonASCIISubject(t *testing.T) {
	payload := string(buildMIMEMessage("noreply@example.com", Email{
		To:      "a@b.com",
		Subject: "Réponse à votre message",
	}))

	assert.Contains(t, payload, "Subject: =?utf-8?q?")
}
