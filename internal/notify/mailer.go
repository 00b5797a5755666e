package notify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/internship-platform/internal/config"
)

// Email is the outbound message handed to a sender, with both plain-text
// and HTML variants.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// EmailSender delivers an email, returning an error on failure. Callers
// decide whether a failure is best-effort or blocking.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSMTPMailer constructs the mailer.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send builds a multipart/alternative MIME message and submits it.
func (m *SMTPMailer) Send(_ context.Context, email Email) error {
	if m.cfg.Host == "" {
		return errors.New("smtp host not configured")
	}
	if strings.TrimSpace(email.To) == "" {
		return errors.New("empty recipient")
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	payload := buildMIMEMessage(m.cfg.From, email)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, payload); err != nil {
		m.logger.Error("smtp send failed",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err),
		)
		return err
	}

	m.logger.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}

const mimeBoundary = "=_internship_platform_alt"

func buildMIMEMessage(from string, email Email) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", mimeBoundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(email.Text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(email.HTML)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}
