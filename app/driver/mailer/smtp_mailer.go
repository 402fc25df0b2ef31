package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const (
	sendTimeout = 15 * time.Second
	implicitTLS = 465
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements port.Mailer over an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer creates a mailer. Connections are opened per message.
func NewSMTPMailer(cfg Config, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("sender address is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(sendTimeout),
	}
	if cfg.Port == implicitTLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   cfg.From,
		logger: logger.With("component", "smtp_mailer"),
	}, nil
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, message *domain.EmailMessage) error {
	msg, err := buildMessage(m.from, message)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "failed to send email", "subject", message.Subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.InfoContext(ctx, "email sent", "subject", message.Subject, "recipients", len(message.To))
	return nil
}

func buildMessage(from string, message *domain.EmailMessage) (*mail.Msg, error) {
	if len(message.To) == 0 {
		return nil, errors.New("email has no recipients")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(message.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if message.ReplyTo != "" {
		if err := msg.ReplyTo(message.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Body)
	return msg, nil
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "log_mailer")}
}

// Send logs the message envelope and body.
func (m *LogMailer) Send(ctx context.Context, message *domain.EmailMessage) error {
	m.logger.WarnContext(ctx, "smtp not configured, message not delivered",
		"to", message.To,
		"subject", message.Subject,
		"body", message.Body)
	return nil
}
