// Copyright (c) 2026 BookWise. All rights reserved.

// Package mailer provides outbound SMTP delivery for transactional email.
//
// # Architecture
//
// It wraps go-mail behind a tiny Sender interface so the digest scheduler can
// be unit-tested with a fake. Delivery is synchronous; callers decide whether
// a failed send is fatal (it never is for the digest — the next day retries).
package mailer

import (
	"fmt"

	mail "github.com/go-mail/mail/v2"
)

// Sender is the delivery contract consumed by the notify slices.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

// New constructs an [SMTPMailer] for the given relay.
func New(host string, port int, username, password, from string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	// STARTTLS is opportunistic; the relay decides.
	dialer.StartTLSPolicy = mail.OpportunisticStartTLS

	return &SMTPMailer{dialer: dialer, from: from}
}

// Send delivers a single HTML message to the given recipients.
//
// Recipients are set as BCC so subscribers never see each other's addresses.
func (m *SMTPMailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	message := mail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", m.from)
	message.SetHeader("Bcc", to...)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mailer: failed to send %q: %w", subject, err)
	}

	return nil
}
