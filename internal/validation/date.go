package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/Admintools08/BP/internal/apperror"
)

const DateLayout = "2006-01-02"

// ValidateDate requires a calendar date in YYYY-MM-DD form.
func ValidateDate(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(field, "date is required")
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return apperror.Validation(field, "date must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateURL requires an absolute http or https URL with a host.
func ValidateURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return apperror.Validation(field, "malformed URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperror.Validation(field, "URL must use http or https")
	}
	if u.Host == "" {
		return apperror.Validation(field, "URL must include a host")
	}
	return nil
}

// ParseMonth parses a YYYY-MM month filter.
func ParseMonth(field, value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, apperror.Validation(field, "month must be in YYYY-MM format")
	}
	return t.Year(), t.Month(), nil
}
