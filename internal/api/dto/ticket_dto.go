package dto

import (
	"github.com/pureiot/support-api/internal/domain"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	TicketNumber      string `json:"ticketNumber"`
	UserName          string `json:"userName"`
	UserEmail         string `json:"userEmail"`
	UserPhone         string `json:"userPhone"`
	CompanyName       string `json:"companyName"`
	Issue             string `json:"issue"`
	Priority          string `json:"priority"`
	ContactPreference string `json:"contactPreference"`
	ScheduledTime     string `json:"scheduledTime"`
	AnyDeskID         string `json:"anyDeskId"`
}

// SubmitTicketResponse mirrors the original API envelope.
type SubmitTicketResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TicketNumber string `json:"ticketNumber,omitempty"`
}

// TicketListResponse wraps the per-user listing.
type TicketListResponse struct {
	Success bool            `json:"success"`
	Tickets []domain.Ticket `json:"tickets"`
}

// UpdateTicketForm is the HTML form body for status updates.
type UpdateTicketForm struct {
	Status string `form:"status"`
	Notes  string `form:"notes"`
}
