package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	clock       clock.Clock
}

func NewProfileService(profileRepo repository.ProfileRepository, clk clock.Clock) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		clock:       clk,
	}
}

func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, apperror.NotFound("profile", userID)
	}
	if err != nil {
		return nil, apperror.Persistence("get profile", err)
	}
	return profile, nil
}

// Update replaces the profile fields. Identity fields live on the user and never change here.
func (s *ProfileService) Update(ctx context.Context, userID string, in model.ProfileInput) (*model.Profile, error) {
	err := validation.ValidateProfile(in)
	if err != nil {
		return nil, err
	}

	profile, err := s.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = strings.TrimSpace(in.FullName)
	profile.Position = strings.TrimSpace(in.Position)
	profile.Department = strings.TrimSpace(in.Department)
	profile.JoinDate = in.JoinDate
	profile.ExistingSkills = model.StringSet(validation.NormalizeSet(in.ExistingSkills))
	profile.LearningInterests = model.StringSet(validation.NormalizeSet(in.LearningInterests))
	profile.UpdatedAt = s.clock.Now().UTC()

	err = s.profileRepo.Update(ctx, profile)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, apperror.NotFound("profile", userID)
	}
	if err != nil {
		return nil, apperror.Persistence("update profile", err)
	}

	return profile, nil
}
