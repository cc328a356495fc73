package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/config"
)

// Message is one outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers notification email. Delivery failures are returned to the
// caller and fail the triggering request.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// smtpSender delivers through an SMTP relay.
type smtpSender struct {
	client *gomail.Client
	from   string
}

// NewSender builds the SMTP sender, or a log-only sender when no SMTP host
// is configured.
func NewSender(cfg config.SMTPConfig, logger *zap.Logger) (Sender, error) {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not provided; email notifications will only be logged")
		return &logSender{logger: logger}, nil
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &smtpSender{client: client, from: cfg.From}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return err
	}
	if err := m.To(msg.To); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return s.client.DialAndSendWithContext(ctx, m)
}

// logSender records the message instead of delivering it.
type logSender struct {
	logger *zap.Logger
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email notification (delivery disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
