// Package email delivers transactional email through Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/pkg/logger"
)

// ResendSender sends notification email via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

// NewResendSender builds a sender. from is the full RFC 5322 address,
// e.g. "Interlock Portal <noreply@example.com>".
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    logger.Component("email"),
	}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	request := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	if _, err := s.client.Emails.Send(request); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.log.Debug().Str("to", to).Msg("email sent")
	return nil
}

// NoopSender is used when no Resend API key is configured. Notifications
// are still persisted; only the email leg is skipped.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, to, subject, body string) error {
	log := logger.Component("email")
	log.Debug().Str("to", to).Str("subject", subject).Msg("email delivery disabled, skipping")
	return nil
}
