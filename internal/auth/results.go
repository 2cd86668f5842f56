package auth

import "github.com/UniPortal-io/uniportal/internal/models"

// Result records returned by the orchestrator. Expected failures are
// reported through Success/Valid and Message, never as error values.

type LoginResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Session *models.Session `json:"session,omitempty"`
}

type RegisterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecoveryResult carries the minted token only when the email mapped
// to a user; the message is identical either way.
type RecoveryResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type TokenValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

type ResetResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
