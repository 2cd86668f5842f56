package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the fixed set of portal account roles.
type Role string

const (
	RoleStudent       Role = "Student"
	RoleTeacher       Role = "Teacher"
	RoleAdministrator Role = "Administrator"
)

// UserStatus marks whether an account is usable.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// User is a portal account record. LoginAttempts and BlockedUntil are
// mutated in place by the lockout engine; users are never hard-deleted.
type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"passwordHash"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	LoginAttempts int        `json:"loginAttempts"`
	BlockedUntil  *time.Time `json:"blockedUntil,omitempty"`
}

// SetPassword hashes the plaintext password and stores the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Session is the proof of a successful login. User fields are
// denormalized at login time. A session past ExpiresAt is treated as
// absent and purged on the next read.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RecoveryToken is a single-use password-reset credential. At most one
// active token exists per email; Used flips to true exactly once and
// never back.
type RecoveryToken struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
}

// Expired reports whether deadline has passed at the given instant.
// Session, recovery-token and account-block expiry all go through this
// predicate.
func Expired(deadline, now time.Time) bool {
	return now.After(deadline)
}
