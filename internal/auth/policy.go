package auth

import "time"

// Fixed authentication policy. These values are part of the portal's
// contract with its UI and are not environment-driven.
const (
	MaxLoginAttempts  = 4
	BlockDuration     = 30 * time.Minute
	TokenTTL          = 24 * time.Hour
	MinPasswordLength = 10
	SessionTimeout    = 30 * time.Minute
)
