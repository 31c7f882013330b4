package validation

import (
	"github.com/Admintools08/BP/internal/model"
)

func ValidateProfile(in model.ProfileInput) error {
	if err := ValidateName(in.FullName); err != nil {
		return err
	}
	if in.JoinDate != "" {
		return ValidateDate("date_of_joining", in.JoinDate)
	}
	return nil
}
