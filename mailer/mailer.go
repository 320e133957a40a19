// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/gymkompaniet/code-hunt/cliparse"
)

// Sender delivers a plain-text notification. Implementations must be
// safe to call after the winning transaction has committed; a failed
// send only degrades the response flag, never the request.
type Sender interface {
	Send(subject, body string) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	cfg cliparse.Config
}

func New(cfg cliparse.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("invalid SMTP from address: %w", err)
	}
	if err := msg.To(s.cfg.SMTPTo); err != nil {
		return fmt.Errorf("invalid SMTP to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTimeout(10 * time.Second),
	}
	if s.cfg.SMTPTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.SMTPUser),
			mail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client.DialAndSend(msg)
}

// WinnerSubject is the notification subject line.
const WinnerSubject = "Ny vinnare - Gymkompaniet"

// WinnerBody renders the notification sent when the winner submits
// contact details.
func WinnerBody(name, email, phone string) string {
	lines := []string{
		"En vinnare har skickat in sina uppgifter.",
		"",
		"Namn: " + name,
		"E-post: " + email,
	}
	if phone != "" {
		lines = append(lines, "Telefon: "+phone)
	}
	return strings.Join(lines, "\n")
}
