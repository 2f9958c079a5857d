// Package mailer provides outbound email delivery for candidate
// notifications.
package mailer

import (
	"context"
	"fmt"
	"log"

	mail "github.com/wneessen/go-mail"

	"github.com/hiredesk/hiredesk/internal/config"
)

// Sender delivers a single HTML email. Implementations must not be relied on
// for the success of the operation that triggered them; delivery is
// best-effort by design.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New builds a Sender from configuration. Missing SMTP settings are a valid
// state and yield a Disabled sender that logs instead of delivering.
func New(cfg *config.Config) (Sender, error) {
	if !cfg.EmailConfigured() {
		return Disabled{}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.FromAddress}, nil
}

// Disabled is the no-op variant used when email is not configured.
type Disabled struct{}

// Send logs the skipped delivery and succeeds. Skipping is not an error:
// unconfigured email is a supported deployment mode.
func (Disabled) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("[mailer] email disabled, skipping %q to %s", subject, to)
	return nil
}

// SMTPSender delivers mail through a configured SMTP relay.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// Send delivers one HTML message.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid from address %q: %w", s.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
