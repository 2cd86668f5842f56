package auth

import (
	"crypto/rand"
	"strings"

	"github.com/UniPortal-io/uniportal/internal/models"
)

const (
	tokenLength   = 32
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// generateRecoveryToken returns a random token string from the fixed
// alphanumeric alphabet.
func generateRecoveryToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, tokenLength)
	for i, b := range buf {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out), nil
}

// issueRecoveryToken mints a recovery token for the given email.
// Prior tokens for that email are discarded first, so at most one
// active token exists per address. When no user matches the email no
// token is allocated and (nil, nil) is returned; the caller must not
// reveal the difference.
func (s *Service) issueRecoveryToken(email string) (*models.RecoveryToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	tokens := s.store.Tokens()
	kept := make([]models.RecoveryToken, 0, len(tokens))
	for _, t := range tokens {
		if !strings.EqualFold(t.Email, email) {
			kept = append(kept, t)
		}
	}

	user := s.store.FindUserByEmail(email)
	if user == nil {
		s.store.SaveTokens(kept)
		return nil, nil
	}

	value, err := generateRecoveryToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	token := models.RecoveryToken{
		Token:     value,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(TokenTTL),
	}
	s.store.SaveTokens(append(kept, token))
	return &token, nil
}

// ValidateRecoveryToken checks a recovery token without mutating it.
func (s *Service) ValidateRecoveryToken(token string) TokenValidationResult {
	if token == "" {
		return TokenValidationResult{Message: "Recovery token is required"}
	}
	for _, t := range s.store.Tokens() {
		if t.Token != token {
			continue
		}
		if t.Used {
			return TokenValidationResult{Message: "This recovery link has already been used"}
		}
		if models.Expired(t.ExpiresAt, s.now()) {
			return TokenValidationResult{Message: "This recovery link has expired"}
		}
		return TokenValidationResult{Valid: true, Email: t.Email}
	}
	return TokenValidationResult{Message: "Invalid recovery link"}
}

// consumeRecoveryToken marks the token as used. Used is never unset.
func (s *Service) consumeRecoveryToken(token string) {
	tokens := s.store.Tokens()
	for i := range tokens {
		if tokens[i].Token == token {
			tokens[i].Used = true
			s.store.SaveTokens(tokens)
			return
		}
	}
}
