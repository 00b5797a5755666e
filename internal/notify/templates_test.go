package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/internship-platform/internal/domain"
)

func sampleMessage() *domain.ContactMessage {
	phone := "53875648"
	return &domain.ContactMessage{
		ID:      1,
		Name:    "Ana",
		Email:   "a@b.com",
		Phone:   &phone,
		Subject: domain.SubjectTechnique,
		Message: "J'ai un problème avec la connexion à mon compte",
		Status:  domain.MessageStatusUnread,
	}
}

func TestAdminAlertAddressesAdminAndQuotesSender(t *testing.T) {
	email := AdminAlert("admin@plateforme.fr", sampleMessage())

	assert.Equal(t, "admin@plateforme.fr", email.To)
	assert.Equal(t, "Nouveau message de contact - technique", email.Subject)
	assert.Contains(t, email.Text, "Ana")
	assert.Contains(t, email.Text, "a@b.com")
	assert.Contains(t, email.HTML, "53875648")
}

func TestTemplatesEscapeUserContent(t *testing.T) {
	msg := sampleMessage()
	msg.Name = `<script>alert("x")</script>`
	msg.Message = "un message <b>avec du HTML</b> dedans"

	for _, email := range []Email{
		AdminAlert("admin@plateforme.fr", msg),
		SubmissionConfirmation(msg),
		Reply(msg, "réponse <i>formatée</i> par l'admin"),
	} {
		assert.NotContains(t, email.HTML, "<script>", email.Subject)
	}

	reply := Reply(msg, "réponse <i>formatée</i> par l'admin")
	assert.NotContains(t, reply.HTML, "<i>")
	assert.Contains(t, reply.HTML, "&lt;i&gt;")
}

func TestReplyQuotesTruncatedOriginal(t *testing.T) {
	msg := sampleMessage()
	msg.Message = strings.Repeat("é", 250)

	email := Reply(msg, "Voici notre réponse à votre demande")

	require.Equal(t, "Re: technique", email.Subject)
	assert.Contains(t, email.HTML, strings.Repeat("é", 200)+"...")
	assert.NotContains(t, email.HTML, strings.Repeat("é", 201))
}

func TestSubmissionConfirmationTargetsSender(t *testing.T) {
	email := SubmissionConfirmation(sampleMessage())

	assert.Equal(t, "a@b.com", email.To)
	assert.Equal(t, "Confirmation de réception de votre message", email.Subject)
	assert.Contains(t, email.Text, "Bonjour Ana")
}

func TestTruncateExcerpt(t *testing.T) {
	assert.Equal(t, "court", TruncateExcerpt("court", 10))
	assert.Equal(t, "12345...", TruncateExcerpt("1234567890", 5))
	// rune-safe on multi-byte input
	assert.Equal(t, "ééé...", TruncateExcerpt("ééééé", 3))
}

func TestAdminSMSAlertSummarizes(t *testing.T) {
	body := AdminSMSAlert(sampleMessage())

	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "technique")
	assert.LessOrEqual(t, len([]rune(body)), 160)
}
