package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/domain"
	"github.com/pureiot/support-api/internal/events"
	"github.com/pureiot/support-api/internal/repository"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	local      repository.LocalTicketRepository
	facade     *repository.TicketFacade
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	LocalRepo  repository.LocalTicketRepository
	Facade     *repository.TicketFacade
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// SubmitInput describes the ticket submission payload. TicketNumber,
// UserName, UserEmail and Issue are required; everything else is optional.
type SubmitInput struct {
	TicketNumber      string
	UserName          string
	UserEmail         string
	UserPhone         string
	AnyDeskID         string
	CompanyName       string
	Issue             string
	Priority          string
	ContactPreference string
	ScheduledTime     string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		local:      deps.LocalRepo,
		facade:     deps.Facade,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Submit validates and stores a new ticket, then emits the created event.
// The ticket is persisted before notification, so a delivery failure leaves
// the ticket stored.
func (s *TicketService) Submit(ctx context.Context, input SubmitInput) (*domain.Ticket, error) {
	if input.TicketNumber == "" || input.UserName == "" || input.UserEmail == "" || input.Issue == "" {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:                input.TicketNumber,
		TicketNumber:      input.TicketNumber,
		UserName:          input.UserName,
		UserEmail:         input.UserEmail,
		UserPhone:         strings.TrimSpace(input.UserPhone),
		AnyDeskID:         strings.TrimSpace(input.AnyDeskID),
		CompanyName:       orNotProvided(input.CompanyName),
		Issue:             input.Issue,
		Priority:          domain.TicketPriority(input.Priority),
		ContactPreference: strings.TrimSpace(input.ContactPreference),
		ScheduledTime:     strings.TrimSpace(input.ScheduledTime),
		Status:            domain.TicketStatusOpen,
		Comments:          []domain.Comment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.local.Append(ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.publish(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketNumber: ticket.TicketNumber,
		Payload:      events.TicketCreatedPayload{Ticket: ticket},
	}); err != nil {
		return nil, apperrors.NewDeliveryError(err)
	}
	return &ticket, nil
}

// ListForUser returns tickets matching the given id by email or by ticket
// number substring. Unknown ids yield an empty list, not an error.
func (s *TicketService) ListForUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return s.local.ListForUser(userID)
}

// Get resolves a ticket through the two-tier lookup chain.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*repository.ResolvedTicket, error) {
	return s.facade.Resolve(ctx, ticketID)
}

// Update applies a status change and optional note. Any of the four status
// labels is accepted regardless of the current state.
func (s *TicketService) Update(ctx context.Context, ticketID string, status domain.TicketStatus, notes string) (*repository.ResolvedTicket, error) {
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": string(status)})
	}

	resolved, err := s.facade.UpdateStatus(ctx, ticketID, status, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, events.Event{
		Type:         events.EventTicketUpdated,
		TicketNumber: resolved.TicketNumber,
		Payload: events.TicketUpdatedPayload{
			Ticket:    resolved.Ticket,
			NewStatus: status,
			Notes:     strings.TrimSpace(notes),
		},
	}); err != nil {
		return nil, apperrors.NewDeliveryError(err)
	}
	return resolved, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) error {
	if s.dispatcher == nil {
		return nil
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	return s.dispatcher.Publish(ctx, event)
}

func orNotProvided(val string) string {
	if strings.TrimSpace(val) == "" {
		return domain.FieldNotProvided
	}
	return val
}
