package validation

import (
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/model"
)

// ValidateGoal checks a goal request. Title, description and target date are required.
func ValidateGoal(in model.GoalInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return apperror.Validation("title", "title is required")
	}
	if len(title) > 200 {
		return apperror.Validation("title", "title is too long (max 200 characters)")
	}

	if strings.TrimSpace(in.Description) == "" {
		return apperror.Validation("description", "description is required")
	}

	return ValidateDate("target_completion", in.TargetCompletion)
}

func ValidateGoalStatus(status string) error {
	if !model.GoalStatus(status).Valid() {
		return apperror.Validation("status", "status must be one of active, completed, abandoned")
	}
	return nil
}
