package utils

import (
	"fmt"

	"roamly/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text mail through the configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a mailer from AppConfig SMTP settings.
func NewMailer() *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
