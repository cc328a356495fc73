package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidStatus reports whether s is one of the four ticket statuses.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency labels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// FieldNotProvided is stored for optional fields the submitter left blank.
const FieldNotProvided = "N/A"

// Ticket is the aggregate for support requests. JSON tags match the
// persisted document layout.
type Ticket struct {
	ID                string         `json:"id"`
	TicketNumber      string         `json:"ticketNumber"`
	UserName          string         `json:"userName"`
	UserEmail         string         `json:"userEmail"`
	UserPhone         string         `json:"userPhone,omitempty"`
	AnyDeskID         string         `json:"anyDeskId,omitempty"`
	CompanyName       string         `json:"companyName"`
	Issue             string         `json:"issue"`
	Priority          TicketPriority `json:"priority"`
	ContactPreference string         `json:"contactPreference,omitempty"`
	ScheduledTime     string         `json:"scheduledTime,omitempty"`
	Status            TicketStatus   `json:"status"`
	Comments          []Comment      `json:"comments"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Comment is one append-only note on a ticket thread.
type Comment struct {
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// TicketDocument is the whole persisted collection, rewritten on every
// mutation.
type TicketDocument struct {
	Tickets []Ticket `json:"tickets"`
}
