package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{Email: "ana@gmail.com"}
	require.NoError(t, user.SetPassword("Abcd123!@x"))

	assert.NotEqual(t, "Abcd123!@x", user.PasswordHash, "plaintext must never be stored")
	assert.True(t, user.CheckPassword("Abcd123!@x"))
	assert.False(t, user.CheckPassword("Abcd123!@y"))
}

func TestExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, Expired(now.Add(time.Minute), now))
	assert.False(t, Expired(now, now), "a deadline is expired only once passed")
	assert.True(t, Expired(now.Add(-time.Second), now))
}
