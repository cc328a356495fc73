package repository

import "github.com/pureiot/support-api/internal/domain"

// The hosted store uses its own status vocabulary. Both translations are
// total: unrecognized input maps to the target vocabulary's default.
const (
	externalStatusSubmitted  = "submitted"
	externalStatusAssigned   = "assigned"
	externalStatusInProgress = "in_progress"
	externalStatusCompleted  = "completed"
	externalStatusClosed     = "closed"
)

// ToExternalStatus maps a local ticket status to the hosted store vocabulary.
func ToExternalStatus(s domain.TicketStatus) string {
	switch s {
	case domain.TicketStatusOpen:
		return externalStatusSubmitted
	case domain.TicketStatusInProgress:
		return externalStatusInProgress
	case domain.TicketStatusResolved:
		return externalStatusCompleted
	case domain.TicketStatusClosed:
		return externalStatusClosed
	default:
		return externalStatusSubmitted
	}
}

// FromExternalStatus maps a hosted store status to the local vocabulary.
func FromExternalStatus(s string) domain.TicketStatus {
	switch s {
	case externalStatusSubmitted:
		return domain.TicketStatusOpen
	case externalStatusAssigned, externalStatusInProgress:
		return domain.TicketStatusInProgress
	case externalStatusCompleted:
		return domain.TicketStatusResolved
	case externalStatusClosed:
		return domain.TicketStatusClosed
	default:
		return domain.TicketStatusOpen
	}
}
