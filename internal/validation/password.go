package validation

import (
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
)

// ValidatePassword validates password strength
// Minimum 12 characters, blocks common patterns
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return apperror.Validation("password", "password must be at least 12 characters")
	}

	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return apperror.Validation("password", "password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return apperror.Validation("password", "password is too common, please choose a stronger one")
		}
	}

	return nil
}
