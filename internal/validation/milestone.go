package validation

import (
	"math"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/model"
)

func ValidateMilestone(in model.MilestoneInput) error {
	if in.GoalID != nil && strings.TrimSpace(*in.GoalID) == "" {
		return apperror.Validation("goal_id", "goal id must not be blank")
	}

	if strings.TrimSpace(in.WhatLearned) == "" {
		return apperror.Validation("what_learned", "what was learned is required")
	}

	if strings.TrimSpace(in.LearningSource) == "" {
		return apperror.Validation("learning_source", "learning source is required")
	}

	if err := ValidateHours(in.HoursInvested); err != nil {
		return err
	}

	return validateCertificateLink(in.CertificateLink)
}

func ValidateMilestoneUpdate(in model.MilestoneUpdate) error {
	if strings.TrimSpace(in.WhatLearned) == "" {
		return apperror.Validation("what_learned", "what was learned is required")
	}
	return validateCertificateLink(in.CertificateLink)
}

// ValidateHours rejects negative, NaN and infinite values.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return apperror.Validation("hours_invested", "hours must be a finite number")
	}
	if hours < 0 {
		return apperror.Validation("hours_invested", "hours must not be negative")
	}
	return nil
}

// validateCertificateLink checks the link as it will be stored: trimmed,
// with a blank link meaning none.
func validateCertificateLink(link *string) error {
	if link == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*link)
	if trimmed == "" {
		return nil
	}
	return ValidateURL("project_certificate_link", trimmed)
}
