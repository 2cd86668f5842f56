// Package auth implements the portal authentication core: credential
// checks, account lockout, session handling and the password-recovery
// flow. All operations return result records; expected failures never
// surface as errors.
package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/UniPortal-io/uniportal/internal/models"
	"github.com/UniPortal-io/uniportal/internal/storage"
	"github.com/google/uuid"
)

const msgInvalidCredentials = "Invalid credentials"

// Service orchestrates validation, lockout, tokens and storage.
type Service struct {
	store *storage.Store
	now   func() time.Time
}

// NewService creates an authentication service over the given store.
func NewService(store *storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Login authenticates the user and, on success, creates and persists a
// session. Failed attempts feed the lockout engine, with messages that
// escalate as attempts run out. An unknown email gets the same generic
// message as a wrong password.
func (s *Service) Login(email, password string) LoginResult {
	if v := ValidateEmail(email); !v.Valid {
		return LoginResult{Message: v.Message}
	}
	if password == "" {
		return LoginResult{Message: "Password is required"}
	}

	user := s.store.FindUserByEmail(email)
	if user == nil {
		return LoginResult{Message: msgInvalidCredentials}
	}

	if status := s.CheckAccountBlock(user); status.Blocked {
		return LoginResult{Message: fmt.Sprintf("Account blocked. Try again in %d minutes", status.RemainingMinutes)}
	}
	if user.BlockedUntil != nil {
		// Block elapsed naturally since the last attempt.
		s.unlockAccount(user.Email)
	}

	// Login only compares the password; format rules apply when a
	// password is created or changed, not here.
	if !user.CheckPassword(password) {
		remaining := s.incrementLoginAttempts(user.Email)

		if updated := s.store.FindUserByEmail(user.Email); updated != nil {
			if s.CheckAccountBlock(updated).Blocked {
				return LoginResult{Message: fmt.Sprintf(
					"Account blocked for %d minutes due to multiple failed attempts",
					int(BlockDuration.Minutes()))}
			}
		}

		switch {
		case remaining == 1:
			return LoginResult{Message: "Invalid credentials. WARNING: 1 attempt remaining before lockout"}
		case remaining <= 2:
			return LoginResult{Message: fmt.Sprintf("Invalid credentials. %d attempts remaining", remaining)}
		}
		return LoginResult{Message: msgInvalidCredentials}
	}

	s.unlockAccount(user.Email)

	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		LoginTime: now,
		ExpiresAt: now.Add(SessionTimeout),
	}
	s.store.SaveSession(session)

	return LoginResult{Success: true, Message: "Login successful", Session: &session}
}

// Logout clears the current session. Always succeeds.
func (s *Service) Logout() {
	s.store.ClearSession()
}

// Register creates a new account with the base Student role.
func (s *Service) Register(name, email, password, confirmPassword string) RegisterResult {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterResult{Message: "Name is required"}
	}
	if len(name) < 3 {
		return RegisterResult{Message: "Name must be at least 3 characters"}
	}

	if v := ValidateEmail(email); !v.Valid {
		return RegisterResult{Message: v.Message}
	}
	if s.store.FindUserByEmail(email) != nil {
		return RegisterResult{Message: "This email is already registered"}
	}

	if v := ValidatePassword(password); !v.Valid {
		return RegisterResult{Message: v.Message}
	}
	if password != confirmPassword {
		return RegisterResult{Message: "Passwords do not match"}
	}

	users := s.store.Users()
	var maxID int64
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	user := models.User{
		ID:     maxID + 1,
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Name:   name,
		Role:   models.RoleStudent,
		Status: models.StatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		log.Printf("auth: hashing password for %s: %v", user.Email, err)
		return RegisterResult{Message: "Registration failed. Try again"}
	}

	s.store.SaveUsers(append(users, user))
	return RegisterResult{Success: true, Message: "Registration successful. You can now sign in"}
}

// RequestPasswordRecovery issues a recovery token for the email. The
// result message is the same whether or not the email is registered;
// the token is present only when a user was found, so the caller can
// deliver the reset link.
func (s *Service) RequestPasswordRecovery(email string) RecoveryResult {
	if v := ValidateEmail(email); !v.Valid {
		return RecoveryResult{Message: v.Message}
	}

	token, err := s.issueRecoveryToken(email)
	if err != nil {
		log.Printf("auth: issuing recovery token: %v", err)
		return RecoveryResult{Message: "Could not create a recovery link. Try again"}
	}

	result := RecoveryResult{Success: true, Message: "A recovery link has been sent to your email"}
	if token != nil {
		result.Token = token.Token
	}
	return result
}

// ResetPassword sets a new password for the account bound to the
// token. All checks run before any write, so a failure at any step
// leaves no partial mutation.
func (s *Service) ResetPassword(token, newPassword, confirmPassword string) ResetResult {
	tv := s.ValidateRecoveryToken(token)
	if !tv.Valid {
		return ResetResult{Message: tv.Message}
	}
	if newPassword != confirmPassword {
		return ResetResult{Message: "Passwords do not match"}
	}
	if v := ValidatePassword(newPassword); !v.Valid {
		return ResetResult{Message: v.Message}
	}

	user := s.store.FindUserByEmail(tv.Email)
	if user == nil {
		return ResetResult{Message: "User not found"}
	}
	if err := user.SetPassword(newPassword); err != nil {
		log.Printf("auth: hashing password for %s: %v", user.Email, err)
		return ResetResult{Message: "Password update failed. Try again"}
	}

	s.store.UpdateUser(user.Email, func(u *models.User) {
		u.PasswordHash = user.PasswordHash
		u.LoginAttempts = 0
		u.BlockedUntil = nil
	})
	s.consumeRecoveryToken(token)

	return ResetResult{Success: true, Message: "Password updated successfully"}
}

// Session returns the current session, or nil when none is active.
func (s *Service) Session() *models.Session {
	return s.store.Session()
}

// FindUserByEmail returns the account with the given email, or nil.
func (s *Service) FindUserByEmail(email string) *models.User {
	return s.store.FindUserByEmail(email)
}
