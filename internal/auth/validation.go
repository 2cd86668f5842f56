package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Single @, no whitespace, at least one dot in the domain part.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SpecialChars is the set of characters that satisfy the password
// special-character rule.
const SpecialChars = "!@#$%^&*()_+-=[]{}|;:',.<>?"

// ValidationResult is the outcome of a single field check.
type ValidationResult struct {
	Valid   bool
	Message string
}

// PasswordDetails is the per-rule breakdown of a password check. All
// four flags are computed even when an earlier rule already failed, so
// the UI can render a live checklist.
type PasswordDetails struct {
	Length    bool
	Uppercase bool
	Lowercase bool
	Special   bool
}

// PasswordValidationResult is the outcome of a password strength check.
type PasswordValidationResult struct {
	Valid   bool
	Message string
	Details PasswordDetails
}

// ValidateEmail checks the shape of an email address.
func ValidateEmail(email string) ValidationResult {
	if strings.TrimSpace(email) == "" {
		return ValidationResult{Message: "Email is required"}
	}
	for _, r := range email {
		if unicode.IsSpace(r) {
			return ValidationResult{Message: "Email cannot contain spaces"}
		}
	}
	if !emailRegex.MatchString(email) {
		return ValidationResult{Message: "Invalid email format"}
	}
	return ValidationResult{Valid: true}
}

// ValidatePassword checks password strength. Rules are evaluated in a
// fixed order and the first failing rule determines the message.
func ValidatePassword(password string) PasswordValidationResult {
	details := PasswordDetails{
		Length: len(password) >= MinPasswordLength,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			details.Uppercase = true
		case unicode.IsLower(r):
			details.Lowercase = true
		case strings.ContainsRune(SpecialChars, r):
			details.Special = true
		}
	}

	result := PasswordValidationResult{Details: details}
	switch {
	case strings.TrimSpace(password) == "":
		result.Message = "Password is required"
	case !details.Length:
		result.Message = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	case !details.Uppercase:
		result.Message = "Password must contain at least one uppercase letter"
	case !details.Lowercase:
		result.Message = "Password must contain at least one lowercase letter"
	case !details.Special:
		result.Message = "Password must contain at least one special character"
	default:
		result.Valid = true
	}
	return result
}
