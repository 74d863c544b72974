package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dj-idk/gym-backend/domain"
)

var phonePattern = regexp.MustCompile(`^09\d{9}$`)

// ValidatePhone checks the national mobile format: "09" followed by
// nine digits, eleven digits total.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return domain.ErrInvalidPhone
	}
	return nil
}

// ValidatePassword enforces the password policy: at least eight
// characters with at least one letter, one digit and one special
// character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrWeakPassword
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasLetter || !hasDigit || !hasSpecial {
		return domain.ErrWeakPassword
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail does a shape check only; real verification happens via
// the mailed confirmation token.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// ValidateUsername allows letters, digits and underscore, 3 to 32 runes.
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
