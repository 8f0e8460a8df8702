package services

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"wiredleaf-api/config"
	"wiredleaf-api/logger"
	"wiredleaf-api/models"
)

// Mailer delivers one rendered email.
type Mailer interface {
	Send(ctx context.Context, e models.Email) error
}

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends email directly via SMTP. It is used as the Kafka
// email consumer's backend, or on the request path when no brokers are
// configured.
type SMTPMailer struct {
	from   string
	ready  bool
	dialer smtpDialer
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		from:   from,
		ready:  from != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "",
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (m *SMTPMailer) Send(_ context.Context, e models.Email) error {
	if !m.ready {
		logger.Error("Email configuration error: SMTP sender or credentials not configured")
		return fmt.Errorf("smtp not configured (set EMAIL_FROM, SMTP_USER and SMTP_PASS)")
	}

	logger.Debug("Sending email via SMTP - Recipient: %s", e.To)
	if err := m.dialer.DialAndSend(buildMessage(m.from, e)); err != nil {
		logger.Error("Failed to send email to %s: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info("Email sent to %s (%s)", e.To, e.Subject)
	return nil
}

func buildMessage(from string, e models.Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/html", e.Body)

	if a := e.Attach; a != nil {
		data := a.Data
		msg.Attach(a.Name,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return msg
}
