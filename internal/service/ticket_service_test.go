package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/auth"
	"github.com/pureiot/support-api/internal/config"
	"github.com/pureiot/support-api/internal/domain"
	"github.com/pureiot/support-api/internal/events"
	"github.com/pureiot/support-api/internal/mail"
	"github.com/pureiot/support-api/internal/persistence"
	"github.com/pureiot/support-api/internal/repository"
	apperrors "github.com/pureiot/support-api/pkg/util/errorutil"
)

// captureSender records outbound mail and can be told to fail.
type captureSender struct {
	sent []mail.Message
	err  error
}

func (s *captureSender) Send(ctx context.Context, msg mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fixture struct {
	service *TicketService
	local   repository.LocalTicketRepository
	sender  *captureSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := persistence.NewTicketStore(filepath.Join(t.TempDir(), "tickets.json"), logger)
	local := repository.NewLocalTicketRepository(store)
	external := repository.NewExternalTicketRepository(nil)
	facade := repository.NewTicketFacade(external, local, nil, 0, logger)

	sender := &captureSender{}
	dispatcher := events.NewInMemoryDispatcher()
	appCfg := config.AppConfig{Port: "3001", BaseURL: "https://support.example.com"}
	smtpCfg := config.SMTPConfig{SupportEmail: "support@piot.co.za"}
	notifications := NewNotificationService(dispatcher, sender, auth.NewLinkSigner("", 0), appCfg, smtpCfg, logger)
	notifications.RegisterHandlers()

	svc := NewTicketService(TicketDependencies{
		LocalRepo:  local,
		Facade:     facade,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	return &fixture{service: svc, local: local, sender: sender}
}

func validInput() SubmitInput {
	return SubmitInput{
		TicketNumber: "T-100",
		UserName:     "Jane",
		UserEmail:    "jane@x.com",
		Issue:        "printer down",
	}
}

func TestSubmitStoresTicketWithDefaults(t *testing.T) {
	fx := newFixture(t)

	ticket, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.Comments)
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
	assert.Equal(t, domain.FieldNotProvided, ticket.CompanyName)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)

	stored, err := fx.local.FindByNumber("T-100")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", stored.UserEmail)
}

func TestSubmitSendsStaffNotification(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, fx.sender.sent, 1)
	msg := fx.sender.sent[0]
	assert.Equal(t, "support@piot.co.za", msg.To)
	assert.Equal(t, "New Support Ticket: T-100 - Medium Priority", msg.Subject)
	assert.Contains(t, msg.HTML, "https://support.example.com/update/T-100")
}

func TestSubmitValidatesRequiredFields(t *testing.T) {
	fx := newFixture(t)

	mutations := map[string]func(*SubmitInput){
		"ticketNumber": func(in *SubmitInput) { in.TicketNumber = "" },
		"userName":     func(in *SubmitInput) { in.UserName = "" },
		"userEmail":    func(in *SubmitInput) { in.UserEmail = "" },
		"issue":        func(in *SubmitInput) { in.Issue = "" },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := fx.service.Submit(context.Background(), input)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}

	tickets, err := fx.service.ListForUser(context.Background(), "jane@x.com")
	require.NoError(t, err)
	assert.Empty(t, tickets, "invalid submissions persist nothing")
	assert.Empty(t, fx.sender.sent, "invalid submissions send nothing")
}

func TestSubmitDeliveryFailureSurfacesAfterPersist(t *testing.T) {
	fx := newFixture(t)
	fx.sender.err = errors.New("smtp unreachable")

	_, err := fx.service.Submit(context.Background(), validInput())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DELIVERY_FAILED", domainErr.Code)

	// The ticket mutation already committed.
	stored, err := fx.local.FindByNumber("T-100")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
}

func TestListForUserLooseMatching(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	byEmail, err := fx.service.ListForUser(context.Background(), "jane@x.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	bySubstring, err := fx.service.ListForUser(context.Background(), "100")
	require.NoError(t, err)
	assert.Len(t, bySubstring, 1)

	none, err := fx.service.ListForUser(context.Background(), "stranger@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateWithNotesAppendsOneComment(t *testing.T) {
	fx := newFixture(t)
	submitted, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := fx.service.Update(context.Background(), "T-100", domain.TicketStatusResolved, "fixed")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "fixed", updated.Comments[0].Text)
	assert.True(t, updated.Comments[0].CreatedAt.After(submitted.CreatedAt) ||
		updated.Comments[0].CreatedAt.Equal(submitted.CreatedAt))

	require.Len(t, fx.sender.sent, 2)
	assert.Equal(t, "jane@x.com", fx.sender.sent[1].To)
	assert.Equal(t, "Ticket Update: T-100 - Status: Resolved", fx.sender.sent[1].Subject)
}

func TestUpdateWithoutNotesLeavesCommentsUnchanged(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := fx.service.Update(context.Background(), "T-100", domain.TicketStatusClosed, "")
	require.NoError(t, err)
	assert.Empty(t, updated.Comments)
}

func TestUpdateRejectsUnknownStatusLabel(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	_, err = fx.service.Update(context.Background(), "T-100", domain.TicketStatus("Reopened"), "")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestUpdateUnknownTicket(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.Update(context.Background(), "T-404", domain.TicketStatusClosed, "")
	assert.True(t, apperrors.IsNotFound(err))
}
