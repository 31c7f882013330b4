package validation

import (
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
)

// ValidateName validates a profile name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return apperror.Validation("full_name", "name is required")
	}

	if len(trimmed) > 100 {
		return apperror.Validation("full_name", "name is too long (max 100 characters)")
	}

	return nil
}
