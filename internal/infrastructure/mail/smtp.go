// Package mail sends notification emails over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/sheetstock/backend/internal/application/notification"
	infraconfig "github.com/sheetstock/backend/internal/infrastructure/config"
)

var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers plain-text mail through a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from configuration.
func NewSMTPMailer(cfg *infraconfig.MailConfig) (*SMTPMailer, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, errors.New("mail configuration is required")
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// Send delivers one message. The SMTP dial has no context hook, so
// cancellation is only checked up front.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return errors.New("at least one recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
