package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		valid   bool
		message string
	}{
		{"plain address", "ana@gmail.com", true, ""},
		{"subdomain", "user.name@mail.uni.edu", true, ""},
		{"empty", "", false, "Email is required"},
		{"blank", "   ", false, "Email is required"},
		{"inner space", "ana lopez@gmail.com", false, "Email cannot contain spaces"},
		{"tab", "ana\t@gmail.com", false, "Email cannot contain spaces"},
		{"two ats", "ana@@gmail.com", false, "Invalid email format"},
		{"at in domain", "ana@gmail@com.es", false, "Invalid email format"},
		{"leading at", "@gmail.com", false, "Invalid email format"},
		{"no at", "ana.gmail.com", false, "Invalid email format"},
		{"no dot in domain", "ana@gmailcom", false, "Invalid email format"},
		{"dot at domain end", "ana@gmail.", false, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestValidatePasswordRuleOrder(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		message  string
	}{
		{"empty", "", false, "Password is required"},
		{"too short", "Ab!", false, "Password must be at least 10 characters"},
		{"no uppercase", "abcdefgh1!", false, "Password must contain at least one uppercase letter"},
		{"no lowercase", "ABCDEFGH1!", false, "Password must contain at least one lowercase letter"},
		{"no special", "Abcdefgh123", false, "Password must contain at least one special character"},
		{"minimum valid", "Abcd1234!@", true, ""},
		{"digits optional", "Abcdefghij!", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.password)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestValidatePasswordDetailsIndependentOfShortCircuit(t *testing.T) {
	// Length fails first, but the breakdown still reports the checks
	// that do pass.
	res := ValidatePassword("Ab!")
	assert.False(t, res.Valid)
	assert.False(t, res.Details.Length)
	assert.True(t, res.Details.Uppercase)
	assert.True(t, res.Details.Lowercase)
	assert.True(t, res.Details.Special)

	res = ValidatePassword("Abcd1234!@")
	assert.True(t, res.Valid)
	assert.Equal(t, PasswordDetails{Length: true, Uppercase: true, Lowercase: true, Special: true}, res.Details)
}
