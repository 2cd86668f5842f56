package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredMailerIsDetectable(t *testing.T) {
	mailer := NewSMTPMailer("", 0, "", "", "")
	assert.False(t, mailer.Configured())

	err := mailer.SendRecoveryEmail("ana@gmail.com", "Ana Lopez", "http://localhost/reset")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfiguredCheck(t *testing.T) {
	assert.True(t, NewSMTPMailer("smtp.example.edu", 587, "", "", "no-reply@example.edu").Configured())
	assert.False(t, NewSMTPMailer("smtp.example.edu", 587, "", "", "").Configured())
	assert.False(t, NewSMTPMailer("", 587, "", "", "no-reply@example.edu").Configured())
}

func TestRecoveryMessageContents(t *testing.T) {
	msg := string(recoveryMessage("no-reply@example.edu", "ana@gmail.com", "Ana Lopez",
		"https://portal.example.edu/reset-password?token=abc123"))

	assert.Contains(t, msg, "From: no-reply@example.edu")
	assert.Contains(t, msg, "To: ana@gmail.com")
	assert.Contains(t, msg, "Subject: UniPortal password recovery")
	assert.Contains(t, msg, "Hello Ana Lopez,")
	assert.Contains(t, msg, "https://portal.example.edu/reset-password?token=abc123")
}
