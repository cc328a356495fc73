package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/pureiot/support-api/internal/api/dto"
	"github.com/pureiot/support-api/internal/auth"
	"github.com/pureiot/support-api/internal/domain"
	"github.com/pureiot/support-api/internal/service"
	"github.com/pureiot/support-api/internal/web"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

// UpdateHandler serves the browser-facing status update flow reached from
// the emailed deep link.
type UpdateHandler struct {
	service *service.TicketService
	signer  *auth.LinkSigner
}

// NewUpdateHandler constructs handler.
func NewUpdateHandler(ticketService *service.TicketService, signer *auth.LinkSigner) *UpdateHandler {
	return &UpdateHandler{service: ticketService, signer: signer}
}

// RenderForm GET /update/:ticketId.
func (h *UpdateHandler) RenderForm(c *fiber.Ctx) error {
	ticketID := c.Params("ticketId")
	if err := h.checkToken(c, ticketID); err != nil {
		return sendHTML(c, fiber.StatusForbidden, web.UpdateErrorPage("This update link is invalid or has expired."))
	}

	ticket, err := h.service.Get(c.Context(), ticketID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return sendHTML(c, fiber.StatusOK, web.NotFoundPage(ticketID))
		}
		return sendHTML(c, fiber.StatusInternalServerError, web.UpdateErrorPage(err.Error()))
	}

	action := fmt.Sprintf("/update/%s", ticketID)
	if token := c.Query("token"); token != "" {
		action += "?token=" + url.QueryEscape(token)
	}
	return sendHTML(c, fiber.StatusOK, web.UpdateFormPage(web.FormData{Ticket: ticket, FormAction: action}))
}

// SubmitUpdate POST /update/:ticketId.
func (h *UpdateHandler) SubmitUpdate(c *fiber.Ctx) error {
	ticketID := c.Params("ticketId")
	if err := h.checkToken(c, ticketID); err != nil {
		return sendHTML(c, fiber.StatusForbidden, web.UpdateErrorPage("This update link is invalid or has expired."))
	}

	var form dto.UpdateTicketForm
	if err := c.BodyParser(&form); err != nil {
		return sendHTML(c, fiber.StatusBadRequest, web.UpdateErrorPage("Invalid form submission."))
	}

	ticket, err := h.service.Update(c.Context(), ticketID, domain.TicketStatus(form.Status), form.Notes)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return sendHTML(c, fiber.StatusOK, web.UpdateErrorPage("Ticket not found"))
		}
		domainErr := apperrors.ToDomainError(err)
		status := fiber.StatusInternalServerError
		if domainErr.Code == "VALIDATION_FAILED" {
			status = fiber.StatusBadRequest
		}
		return sendHTML(c, status, web.UpdateErrorPage(domainErr.Error()))
	}

	return sendHTML(c, fiber.StatusOK, web.UpdateSuccessPage(web.SuccessData{
		TicketID:  ticket.TicketNumber,
		Status:    string(ticket.Status),
		UserEmail: ticket.UserEmail,
	}))
}

func (h *UpdateHandler) checkToken(c *fiber.Ctx, ticketID string) error {
	if !h.signer.Enabled() {
		return nil
	}
	return h.signer.VerifyUpdateToken(c.Query("token"), ticketID)
}

func sendHTML(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(body)
}
