package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pureiot/support-api/internal/api/dto"
	"github.com/pureiot/support-api/internal/service"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

// TicketsHandler manages the JSON ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// SubmitTicket POST /api/submit-ticket.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmitTicketResponse{
			Success: false,
			Message: "Missing required fields",
		})
	}

	ticket, err := h.service.Submit(c.Context(), service.SubmitInput{
		TicketNumber:      req.TicketNumber,
		UserName:          req.UserName,
		UserEmail:         req.UserEmail,
		UserPhone:         req.UserPhone,
		AnyDeskID:         req.AnyDeskID,
		CompanyName:       req.CompanyName,
		Issue:             req.Issue,
		Priority:          req.Priority,
		ContactPreference: req.ContactPreference,
		ScheduledTime:     req.ScheduledTime,
	})
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.Code == "VALIDATION_FAILED" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.SubmitTicketResponse{
				Success: false,
				Message: "Missing required fields",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmitTicketResponse{
			Success: false,
			Message: "Failed to submit ticket",
		})
	}

	return c.JSON(dto.SubmitTicketResponse{
		Success:      true,
		Message:      "Ticket submitted and email sent",
		TicketNumber: ticket.TicketNumber,
	})
}

// ListTickets GET /api/tickets/:userId.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListForUser(c.Context(), c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch tickets",
		})
	}
	return c.JSON(dto.TicketListResponse{Success: true, Tickets: tickets})
}
