package auth

import (
	"math"

	"github.com/UniPortal-io/uniportal/internal/models"
)

// BlockStatus describes whether an account is currently locked out.
type BlockStatus struct {
	Blocked          bool
	RemainingMinutes int
}

// CheckAccountBlock evaluates the account's block state at the current
// instant. Blocks are checked lazily at read time; there is no
// background sweep.
func (s *Service) CheckAccountBlock(user *models.User) BlockStatus {
	if user.BlockedUntil == nil {
		return BlockStatus{}
	}
	now := s.now()
	if now.Before(*user.BlockedUntil) {
		remaining := int(math.Ceil(user.BlockedUntil.Sub(now).Minutes()))
		return BlockStatus{Blocked: true, RemainingMinutes: remaining}
	}
	return BlockStatus{}
}

// blockAccount puts the account into the blocked state and pins the
// attempt counter at the maximum.
func (s *Service) blockAccount(email string) {
	until := s.now().Add(BlockDuration)
	s.store.UpdateUser(email, func(u *models.User) {
		u.BlockedUntil = &until
		u.LoginAttempts = MaxLoginAttempts
	})
}

// unlockAccount clears any block and zeroes the attempt counter.
func (s *Service) unlockAccount(email string) {
	s.store.UpdateUser(email, func(u *models.User) {
		u.BlockedUntil = nil
		u.LoginAttempts = 0
	})
}

// incrementLoginAttempts records one failed login and returns the
// number of attempts remaining before lockout. Reaching the maximum
// blocks the account.
func (s *Service) incrementLoginAttempts(email string) int {
	remaining := MaxLoginAttempts
	updated := s.store.UpdateUser(email, func(u *models.User) {
		u.LoginAttempts++
		remaining = MaxLoginAttempts - u.LoginAttempts
	})
	if !updated {
		return MaxLoginAttempts
	}
	if remaining <= 0 {
		s.blockAccount(email)
		remaining = 0
	}
	return remaining
}
