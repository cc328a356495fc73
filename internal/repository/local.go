package repository

import (
	"strings"

	"github.com/pureiot/support-api/internal/domain"
	"github.com/pureiot/support-api/internal/persistence"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

// LocalTicketRepository persists tickets in the flat JSON document.
type LocalTicketRepository interface {
	FindByNumber(number string) (*domain.Ticket, error)
	ListForUser(userID string) ([]domain.Ticket, error)
	Append(ticket domain.Ticket) error
	Upsert(ticket domain.Ticket) error
}

type localTicketRepository struct {
	store *persistence.TicketStore
}

// NewLocalTicketRepository instantiates the repository over the document store.
func NewLocalTicketRepository(store *persistence.TicketStore) LocalTicketRepository {
	return &localTicketRepository{store: store}
}

func (r *localTicketRepository) FindByNumber(number string) (*domain.Ticket, error) {
	doc, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range doc.Tickets {
		if doc.Tickets[i].TicketNumber == number {
			ticket := doc.Tickets[i]
			return &ticket, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticketNumber": number})
}

// ListForUser matches on exact userEmail or on ticket numbers containing the
// given id, so a partial ticket-number lookup works too.
func (r *localTicketRepository) ListForUser(userID string) ([]domain.Ticket, error) {
	doc, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Ticket, 0)
	for _, ticket := range doc.Tickets {
		if ticket.UserEmail == userID || strings.Contains(ticket.TicketNumber, userID) {
			matched = append(matched, ticket)
		}
	}
	return matched, nil
}

func (r *localTicketRepository) Append(ticket domain.Ticket) error {
	return r.store.Update(func(doc *domain.TicketDocument) error {
		doc.Tickets = append(doc.Tickets, ticket)
		return nil
	})
}

// Upsert replaces the ticket with the same number, or appends when no match
// exists. Callers are responsible for UpdatedAt.
func (r *localTicketRepository) Upsert(ticket domain.Ticket) error {
	return r.store.Update(func(doc *domain.TicketDocument) error {
		for i := range doc.Tickets {
			if doc.Tickets[i].TicketNumber == ticket.TicketNumber {
				doc.Tickets[i] = ticket
				return nil
			}
		}
		doc.Tickets = append(doc.Tickets, ticket)
		return nil
	})
}
