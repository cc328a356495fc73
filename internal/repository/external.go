package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pureiot/support-api/internal/domain"
)

// ErrNotConfigured is returned when no external store connection exists.
var ErrNotConfigured = errors.New("external ticket store not configured")

// ExternalTicketRepository reads and mutates tickets in the hosted store,
// translating between status vocabularies at the boundary.
type ExternalTicketRepository interface {
	FindByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, number string, status domain.TicketStatus) error
	AddComment(ctx context.Context, number, text, author string) error
}

type externalTicketRepository struct {
	pool *pgxpool.Pool
}

// NewExternalTicketRepository instantiates the repository. A nil pool yields
// a repository whose operations fail with ErrNotConfigured.
func NewExternalTicketRepository(pool *pgxpool.Pool) ExternalTicketRepository {
	return &externalTicketRepository{pool: pool}
}

// FindByNumber joins the ticket with its submitter profile, company and
// ordered comments, normalized into the local ticket shape.
func (r *externalTicketRepository) FindByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	const query = `
        SELECT t.id, t.ticket_number, t.issue, t.status, t.priority,
               t.anydesk_id, t.contact_preference, t.scheduled_time,
               t.created_at, t.updated_at,
               p.name, p.email, p.phone, c.name
        FROM tickets t
        JOIN profiles p ON p.id = t.profile_id
        LEFT JOIN companies c ON c.id = t.company_id
        WHERE t.ticket_number = $1`

	var (
		ticketID                            string
		status                              string
		priority                            *string
		anyDesk, contactPref, scheduledTime *string
		userPhone, companyName              *string
		ticket                              domain.Ticket
	)
	if err := r.pool.QueryRow(ctx, query, number).Scan(
		&ticketID,
		&ticket.TicketNumber,
		&ticket.Issue,
		&status,
		&priority,
		&anyDesk,
		&contactPref,
		&scheduledTime,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.UserName,
		&ticket.UserEmail,
		&userPhone,
		&companyName,
	); err != nil {
		return nil, err
	}

	ticket.ID = ticket.TicketNumber
	ticket.Status = FromExternalStatus(status)
	ticket.Priority = domain.TicketPriorityMedium
	if priority != nil && *priority != "" {
		ticket.Priority = domain.TicketPriority(*priority)
	}
	ticket.CompanyName = domain.FieldNotProvided
	if companyName != nil && *companyName != "" {
		ticket.CompanyName = *companyName
	}
	ticket.UserPhone = orEmpty(userPhone)
	ticket.AnyDeskID = orEmpty(anyDesk)
	ticket.ContactPreference = orEmpty(contactPref)
	ticket.ScheduledTime = orEmpty(scheduledTime)

	comments, err := r.listComments(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Comments = comments
	return &ticket, nil
}

func (r *externalTicketRepository) listComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT text, author_name, created_at
        FROM ticket_comments
        WHERE ticket_id = $1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.Text, &comment.Author, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// UpdateStatus writes the translated status back to the hosted store.
func (r *externalTicketRepository) UpdateStatus(ctx context.Context, number string, status domain.TicketStatus) error {
	if r.pool == nil {
		return ErrNotConfigured
	}
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE ticket_number=$2`
	cmd, err := r.pool.Exec(ctx, query, ToExternalStatus(status), number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddComment inserts one comment row for the ticket.
func (r *externalTicketRepository) AddComment(ctx context.Context, number, text, author string) error {
	if r.pool == nil {
		return ErrNotConfigured
	}
	const query = `
        INSERT INTO ticket_comments (id, ticket_id, text, author_name)
        SELECT $1, t.id, $2, $3 FROM tickets t WHERE t.ticket_number = $4`
	cmd, err := r.pool.Exec(ctx, query, uuid.NewString(), text, author, number)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
