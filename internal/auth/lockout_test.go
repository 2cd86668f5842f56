package auth

import (
	"testing"
	"time"

	"github.com/UniPortal-io/uniportal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccountBlock(t *testing.T) {
	svc, _, clock := newTestService(t)

	user := &models.User{Email: "x@y.com"}
	assert.False(t, svc.CheckAccountBlock(user).Blocked)

	future := clock.Now().Add(9*time.Minute + 30*time.Second)
	user.BlockedUntil = &future
	status := svc.CheckAccountBlock(user)
	assert.True(t, status.Blocked)
	assert.Equal(t, 10, status.RemainingMinutes, "remaining time rounds up to whole minutes")

	past := clock.Now().Add(-time.Minute)
	user.BlockedUntil = &past
	assert.False(t, svc.CheckAccountBlock(user).Blocked)
}

func TestIncrementLoginAttemptsBlocksAtMax(t *testing.T) {
	svc, store, _ := newTestService(t)

	for want := MaxLoginAttempts - 1; want > 0; want-- {
		remaining := svc.incrementLoginAttempts("student@gmail.com")
		assert.Equal(t, want, remaining)

		user := store.FindUserByEmail("student@gmail.com")
		require.NotNil(t, user)
		assert.Nil(t, user.BlockedUntil)
	}

	remaining := svc.incrementLoginAttempts("student@gmail.com")
	assert.Equal(t, 0, remaining)

	user := store.FindUserByEmail("student@gmail.com")
	require.NotNil(t, user)
	require.NotNil(t, user.BlockedUntil)
	assert.Equal(t, MaxLoginAttempts, user.LoginAttempts, "counter is pinned at the maximum")
	assert.True(t, svc.CheckAccountBlock(user).Blocked)
}

func TestIncrementLoginAttemptsUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.Equal(t, MaxLoginAttempts, svc.incrementLoginAttempts("nobody@gmail.com"))
}

func TestUnlockAccount(t *testing.T) {
	svc, store, _ := newTestService(t)

	for i := 0; i < MaxLoginAttempts; i++ {
		svc.incrementLoginAttempts("student@gmail.com")
	}
	require.NotNil(t, store.FindUserByEmail("student@gmail.com").BlockedUntil)

	svc.unlockAccount("student@gmail.com")

	user := store.FindUserByEmail("student@gmail.com")
	require.NotNil(t, user)
	assert.Nil(t, user.BlockedUntil)
	assert.Equal(t, 0, user.LoginAttempts)
}
