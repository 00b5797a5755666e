package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/internship-platform/internal/api/dto"
	"github.com/spec-kit/internship-platform/internal/auth"
	"github.com/spec-kit/internship-platform/internal/domain"
	"github.com/spec-kit/internship-platform/internal/service"
	apperrors "github.com/spec-kit/internship-platform/pkg/util"
)

// ContactHandler exposes the public submission endpoint and the admin inbox.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{service: contactService}
}

// Submit POST /api/contact (public).
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Requête invalide")
	}

	result, err := h.service.Submit(c.Context(), service.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ok":               true,
		"message":          "Message envoyé avec succès. Nous vous répondrons dans les plus brefs délais.",
		"emailSent":        result.EmailSent,
		"smsSent":          result.SMSSent,
		"confirmationSent": result.ConfirmationSent,
	})
}

// List GET /api/contact (admin).
func (h *ContactHandler) List(c *fiber.Ctx) error {
	input := service.ListInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  parseIntQuery(c.Query("limit"), 50),
		Offset: parseIntQuery(c.Query("offset"), 0),
	}

	result, err := h.service.List(c.Context(), input)
	if err != nil {
		return err
	}

	items := make([]dto.ContactMessageResponse, 0, len(result.Messages))
	for i := range result.Messages {
		items = append(items, messageResponse(&result.Messages[i]))
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"messages": items,
		"counts":   result.Counts,
	})
}

// Get GET /api/contact/:id (admin). Opening an unread message marks it read.
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	msg, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": messageResponse(msg),
	})
}

// Update PATCH /api/contact/:id (admin).
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Non authentifié. Veuillez vous connecter.")
	}

	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Requête invalide")
	}

	if err := h.service.Update(c.Context(), id, principal.User.ID, service.UpdateInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Message mis à jour"})
}

// Reply POST /api/contact/:id/reply (admin).
func (h *ContactHandler) Reply(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Non authentifié. Veuillez vous connecter.")
	}

	var req dto.ReplyContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Requête invalide")
	}

	if err := h.service.Reply(c.Context(), id, principal.User.ID, req.ReplyMessage); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Réponse envoyée avec succès"})
}

// Delete DELETE /api/contact/:id (admin).
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Non authentifié. Veuillez vous connecter.")
	}

	if err := h.service.Delete(c.Context(), id, principal.User.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Message supprimé"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Identifiant invalide")
	}
	return id, nil
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func messageResponse(msg *domain.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:            msg.ID,
		Name:          msg.Name,
		Email:         msg.Email,
		Phone:         msg.Phone,
		Subject:       msg.Subject,
		Message:       msg.Message,
		Status:        msg.Status,
		AdminNotes:    msg.AdminNotes,
		CreatedAt:     msg.CreatedAt,
		RepliedAt:     msg.RepliedAt,
		RepliedBy:     msg.RepliedBy,
		RepliedByName: msg.RepliedByName,
	}
}
