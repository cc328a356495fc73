package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/auth"
	"github.com/pureiot/support-api/internal/config"
	"github.com/pureiot/support-api/internal/events"
	"github.com/pureiot/support-api/internal/mail"
)

// NotificationService turns ticket events into email. Send errors propagate
// through the dispatcher to the request that raised the event.
type NotificationService struct {
	sender       mail.Sender
	dispatcher   events.Dispatcher
	signer       *auth.LinkSigner
	baseURL      string
	supportEmail string
	logger       *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, signer *auth.LinkSigner, appCfg config.AppConfig, smtpCfg config.SMTPConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:       sender,
		dispatcher:   dispatcher,
		signer:       signer,
		baseURL:      appCfg.PublicBaseURL(),
		supportEmail: smtpCfg.SupportEmail,
		logger:       logger,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.Type)
	}

	link, err := n.updateLink(payload.Ticket.TicketNumber)
	if err != nil {
		return err
	}
	msg, err := mail.ComposeTicketCreated(payload.Ticket, n.supportEmail, link)
	if err != nil {
		return err
	}

	n.logger.Info("sending ticket created notification",
		zap.String("ticket_number", payload.Ticket.TicketNumber),
		zap.String("to", n.supportEmail))
	return n.sender.Send(ctx, msg)
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.Type)
	}

	msg, err := mail.ComposeTicketUpdated(payload.Ticket, payload.NewStatus, payload.Notes)
	if err != nil {
		return err
	}

	n.logger.Info("sending ticket updated notification",
		zap.String("ticket_number", payload.Ticket.TicketNumber),
		zap.String("to", payload.Ticket.UserEmail))
	return n.sender.Send(ctx, msg)
}

func (n *NotificationService) updateLink(ticketNumber string) (string, error) {
	link := fmt.Sprintf("%s/update/%s", n.baseURL, ticketNumber)
	if !n.signer.Enabled() {
		return link, nil
	}
	token, err := n.signer.IssueUpdateToken(ticketNumber)
	if err != nil {
		return "", err
	}
	return link + "?token=" + url.QueryEscape(token), nil
}
