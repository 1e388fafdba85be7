// Package validate checks inbound request fields against the declared
// policies and reports failures as 400-typed errors.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pius706975/poolseek-be/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks presence and basic format of an email address.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperr.Validation("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("Email format is invalid")
	}
	return nil
}

// Password enforces the sign-up password policy: minimum 8 characters with
// at least one uppercase letter, one lowercase letter, one digit, and one
// symbol.
func Password(password string) error {
	if password == "" {
		return apperr.Validation("Password is required.")
	}
	if len(password) < 8 {
		return apperr.Validation("Password must have at least 8 characters.")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return apperr.Validation("Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character.")
	}
	return nil
}

// Required checks that a field is non-blank. The message mirrors the
// upstream validator style, e.g. "Device ID is required".
func Required(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(message)
	}
	return nil
}
