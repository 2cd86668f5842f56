// Package notify delivers portal mail. Delivery is best-effort: a
// mailer without credentials reports ErrNotConfigured and the caller
// falls back to showing the reset link directly.
package notify

import (
	"errors"
	"fmt"
	"net/smtp"
)

// ErrNotConfigured is returned when no SMTP credentials are set. This
// is a normal condition, not a delivery failure.
var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer delivers a password-recovery link to a recipient.
type Mailer interface {
	SendRecoveryEmail(to, name, resetLink string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a mailer for the given relay. Empty host or
// from address leaves the mailer unconfigured.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Configured reports whether the mailer has enough settings to send.
func (m *SMTPMailer) Configured() bool {
	return m.host != "" && m.from != ""
}

// SendRecoveryEmail delivers the reset link to the recipient.
func (m *SMTPMailer) SendRecoveryEmail(to, name, resetLink string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	msg := recoveryMessage(m.from, to, name, resetLink)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("sending recovery email: %w", err)
	}
	return nil
}

func recoveryMessage(from, to, name, resetLink string) []byte {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"A password reset was requested for your UniPortal account.\r\n"+
			"Open the link below to choose a new password:\r\n\r\n"+
			"%s\r\n\r\n"+
			"The link is valid for 24 hours and can be used once.\r\n"+
			"If you did not request this, you can ignore this message.\r\n",
		name, resetLink)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: UniPortal password recovery\r\n"+
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		from, to, body)
	return []byte(msg)
}
