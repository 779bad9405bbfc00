// Package mail implements the mailer port over SMTP.
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Config carries the SMTP connection settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPMailer implements out.Mailer with gomail. One dial per send; the
// call volume (OTP and password reset) does not warrant a pooled sender.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log.With().Str("component", "smtp_mailer").Logger(),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.log.Error().Err(err).Str("to", to).Msg("mail dispatch failed")
			return fmt.Errorf("send mail: %w", err)
		}
		m.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
