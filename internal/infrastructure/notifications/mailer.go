package notifications

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"careconnect.backend/internal/config"
)

// Mailer sends html mail over SMTP
type Mailer struct {
	from   string
	dialer *gomail.Dialer
	send   func(d *gomail.Dialer, m *gomail.Message) error
}

// NewMailer returns nil when no SMTP host is configured
func NewMailer(cfg config.MailConfig) *Mailer {
	if !cfg.Enabled() {
		return nil
	}
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		send: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// Send delivers one message
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.send(m.dialer, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
