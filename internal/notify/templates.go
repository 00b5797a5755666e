package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/spec-kit/internship-platform/internal/domain"
)

const signature = "L'équipe Gestion des Offres de Stage"

// originalExcerptLimit bounds the quoted excerpt in reply emails.
const originalExcerptLimit = 200

// AdminAlert builds the email notifying the admin of a new contact message.
func AdminAlert(adminEmail string, msg *domain.ContactMessage) Email {
	phoneLine := ""
	if msg.Phone != nil && *msg.Phone != "" {
		phoneLine = fmt.Sprintf("Téléphone: %s\n", *msg.Phone)
	}

	text := fmt.Sprintf(`Bonjour,

Vous avez reçu un nouveau message de contact.

EXPÉDITEUR
Nom: %s
Email: %s
%s
SUJET: %s

MESSAGE
%s

Pour répondre, envoyez un email à: %s`,
		msg.Name, msg.Email, phoneLine, msg.Subject, msg.Message, msg.Email)

	phoneHTML := ""
	if msg.Phone != nil && *msg.Phone != "" {
		phoneHTML = fmt.Sprintf("<p><strong>Téléphone :</strong> %s</p>", html.EscapeString(*msg.Phone))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 20px auto; background: #fff; padding: 30px; border-radius: 8px;">
    <h2 style="color: #0d6efd;">Nouveau message de contact</h2>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px;">
      <h3 style="color: #198754;">Expéditeur</h3>
      <p><strong>Nom :</strong> %s</p>
      <p><strong>Email :</strong> <a href="mailto:%s">%s</a></p>
      %s
    </div>
    <p style="font-weight: bold; color: #0d6efd;">Sujet : %s</p>
    <div style="background: #f8f9fa; padding: 15px; border-left: 4px solid #0d6efd; white-space: pre-wrap;">%s</div>
    <p style="font-size: 12px; color: #adb5bd; text-align: center;">Plateforme Gestion des Offres de Stage — %d</p>
  </div>
</body>
</html>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Email),
		phoneHTML,
		html.EscapeString(string(msg.Subject)),
		html.EscapeString(msg.Message),
		time.Now().Year())

	return Email{
		To:      adminEmail,
		Subject: fmt.Sprintf("Nouveau message de contact - %s", msg.Subject),
		Text:    text,
		HTML:    htmlBody,
	}
}

// SubmissionConfirmation builds the acknowledgement sent back to the sender.
func SubmissionConfirmation(msg *domain.ContactMessage) Email {
	text := fmt.Sprintf(`Bonjour %s,

Merci de nous avoir contacté. Nous avons bien reçu votre message et nous vous répondrons dans les plus brefs délais.

Résumé de votre demande:
- Sujet: %s

Vous recevrez une réponse à l'adresse email: %s

Cordialement,
%s`, msg.Name, msg.Subject, msg.Email, signature)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 20px auto; background: #fff; padding: 30px; border-radius: 8px;">
    <h2 style="color: #28a745; text-align: center;">Message reçu avec succès !</h2>
    <p>Bonjour <strong>%s</strong>,</p>
    <p>Merci de nous avoir contacté. Nous avons bien reçu votre message et nous vous répondrons dans les plus brefs délais.</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; border-left: 4px solid #28a745;">
      <p><strong>Sujet :</strong> %s</p>
      <p><strong>Email de contact :</strong> %s</p>
    </div>
    <p style="font-size: 14px; color: #6c757d;">Les réponses sont généralement envoyées dans les 24 à 48 heures.</p>
    <p style="font-size: 12px; color: #adb5bd; text-align: center;">Plateforme Gestion des Offres de Stage — %d</p>
  </div>
</body>
</html>`,
		html.EscapeString(msg.Name),
		html.EscapeString(string(msg.Subject)),
		html.EscapeString(msg.Email),
		time.Now().Year())

	return Email{
		To:      msg.Email,
		Subject: "Confirmation de réception de votre message",
		Text:    text,
		HTML:    htmlBody,
	}
}

// Reply builds the admin reply email, quoting a truncated excerpt of the
// original message.
func Reply(msg *domain.ContactMessage, replyBody string) Email {
	text := fmt.Sprintf(`Bonjour %s,

%s

Cordialement,
%s`, msg.Name, replyBody, signature)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 20px auto; background: #fff; padding: 30px; border-radius: 8px;">
    <h2 style="color: #0d6efd;">Réponse à votre message</h2>
    <p>Bonjour <strong>%s</strong>,</p>
    <p>Nous vous remercions pour votre message concernant "<strong>%s</strong>".</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; border-left: 4px solid #0d6efd;">
      <h4 style="color: #0d6efd;">Notre réponse :</h4>
      <div style="white-space: pre-wrap;">%s</div>
    </div>
    <div style="background: #e7f3ff; padding: 15px; border-radius: 8px;">
      <p style="color: #0d6efd; font-size: 14px;"><strong>Votre message original :</strong><br>
      <em style="color: #6c757d;">%s</em></p>
    </div>
    <p style="font-size: 14px; color: #6c757d;">Si vous avez d'autres questions, n'hésitez pas à nous recontacter.</p>
    <p style="font-size: 12px; color: #adb5bd; text-align: center;">Plateforme Gestion des Offres de Stage — %d</p>
  </div>
</body>
</html>`,
		html.EscapeString(msg.Name),
		html.EscapeString(string(msg.Subject)),
		html.EscapeString(replyBody),
		html.EscapeString(TruncateExcerpt(msg.Message, originalExcerptLimit)),
		time.Now().Year())

	return Email{
		To:      msg.Email,
		Subject: "Re: " + string(msg.Subject),
		Text:    text,
		HTML:    htmlBody,
	}
}

// AdminSMSAlert builds the short SMS summary for a new contact message.
func AdminSMSAlert(msg *domain.ContactMessage) string {
	return fmt.Sprintf("Nouveau message de contact de %s (%s): %s",
		msg.Name, msg.Subject, TruncateExcerpt(msg.Message, 80))
}

// TruncateExcerpt shortens a body to limit runes, appending an ellipsis
// when cut.
func TruncateExcerpt(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
