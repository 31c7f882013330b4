package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/metrics"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/progress"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/validation"
	"github.com/google/uuid"
)

// MilestoneService owns milestone creation. It is the only writer of new
// ledger usage: the milestone row and the ledger update commit together.
type MilestoneService struct {
	repo        repository.MilestoneRepository
	goalRepo    repository.GoalRepository
	tx          repository.Transactor
	goalService *GoalService
	ledger      *ResourceLedger
	links       *CertificateLinks
	clock       clock.Clock
}

func NewMilestoneService(
	repo repository.MilestoneRepository,
	goalRepo repository.GoalRepository,
	tx repository.Transactor,
	goalService *GoalService,
	ledger *ResourceLedger,
	links *CertificateLinks,
	clk clock.Clock,
) *MilestoneService {
	return &MilestoneService{
		repo:        repo,
		goalRepo:    goalRepo,
		tx:          tx,
		goalService: goalService,
		ledger:      ledger,
		links:       links,
		clock:       clk,
	}
}

func (s *MilestoneService) Create(ctx context.Context, userID string, in model.MilestoneInput) (*model.Milestone, error) {
	err := validation.ValidateMilestone(in)
	if err != nil {
		return nil, err
	}

	var goalID *string
	if in.GoalID != nil {
		id := strings.TrimSpace(*in.GoalID)
		_, err = s.goalService.Goal(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		goalID = &id
	}

	milestone := &model.Milestone{
		ID:              uuid.New().String(),
		UserID:          userID,
		GoalID:          goalID,
		WhatLearned:     strings.TrimSpace(in.WhatLearned),
		LearningSource:  in.LearningSource,
		HoursInvested:   in.HoursInvested,
		CanTeachOthers:  in.CanTeachOthers,
		CertificateLink: emptyToNil(in.CertificateLink),
		SkillTags:       model.StringSet(validation.NormalizeTags(in.SkillTags)),
		CreatedAt:       s.clock.Now().UTC(),
	}

	err = s.tx.InTx(ctx, func(tx *repository.Repositories) error {
		err := tx.Milestones.Create(ctx, milestone)
		if err != nil {
			return apperror.Persistence("create milestone", err)
		}

		return s.ledger.recordUsage(ctx, tx.Resources, milestone.LearningSource, milestone.HoursInvested, milestone.SkillTags)
	})
	if err != nil {
		return nil, apperror.Persistence("create milestone", err)
	}

	metrics.ObserveMilestone(milestone.HoursInvested)
	slog.Debug("milestone created", "user_id", userID, "milestone_id", milestone.ID, "source", milestone.LearningSource)

	return milestone, nil
}

// Milestone returns the milestone with its goal resolved. A goal that no
// longer exists, or that is not the user's, resolves to nil.
func (s *MilestoneService) Milestone(ctx context.Context, userID, id string) (*model.MilestoneDetail, error) {
	milestone, err := s.Owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	err = s.links.resolve(ctx, userID, milestone)
	if err != nil {
		return nil, err
	}

	detail := &model.MilestoneDetail{Milestone: milestone}
	if milestone.GoalID == nil {
		return detail, nil
	}

	goal, err := s.goalRepo.ByID(ctx, *milestone.GoalID)
	switch {
	case errors.Is(err, repository.ErrGoalNotFound):
		return detail, nil
	case err != nil:
		return nil, apperror.Persistence("resolve milestone goal", err)
	case goal.UserID == userID:
		detail.Goal = goal
	}

	return detail, nil
}

// Milestones returns every milestone of the user, most recent first.
func (s *MilestoneService) Milestones(ctx context.Context, userID string) ([]*model.Milestone, error) {
	milestones, err := s.repo.Milestones(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list milestones", err)
	}
	progress.SortRecent(milestones)

	err = s.links.resolve(ctx, userID, milestones...)
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// Update edits the descriptive fields. Hours and source stay as recorded.
func (s *MilestoneService) Update(ctx context.Context, userID, id string, in model.MilestoneUpdate) (*model.Milestone, error) {
	err := validation.ValidateMilestoneUpdate(in)
	if err != nil {
		return nil, err
	}

	milestone, err := s.Owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	milestone.WhatLearned = strings.TrimSpace(in.WhatLearned)
	milestone.CanTeachOthers = in.CanTeachOthers
	milestone.CertificateLink = emptyToNil(in.CertificateLink)
	milestone.SkillTags = model.StringSet(validation.NormalizeTags(in.SkillTags))

	err = s.repo.Update(ctx, milestone)
	if err != nil {
		return nil, s.writeError("update milestone", id, err)
	}

	err = s.links.resolve(ctx, userID, milestone)
	if err != nil {
		return nil, err
	}
	return milestone, nil
}

// Delete removes the milestone and releases its ledger usage in one transaction.
func (s *MilestoneService) Delete(ctx context.Context, userID, id string) error {
	milestone, err := s.Owned(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(tx *repository.Repositories) error {
		err := tx.Milestones.Delete(ctx, userID, id)
		if err != nil {
			return s.writeError("delete milestone", id, err)
		}

		return s.ledger.releaseUsage(ctx, tx.Resources, milestone.LearningSource, milestone.HoursInvested)
	})
	if err != nil {
		return apperror.Persistence("delete milestone", err)
	}

	return nil
}

// Owned returns the milestone if it exists and belongs to userID.
func (s *MilestoneService) Owned(ctx context.Context, userID, id string) (*model.Milestone, error) {
	milestone, err := s.repo.ByID(ctx, id)
	if errors.Is(err, repository.ErrMilestoneNotFound) {
		return nil, apperror.NotFound("milestone", id)
	}
	if err != nil {
		return nil, apperror.Persistence("get milestone", err)
	}

	if milestone.UserID != userID {
		return nil, apperror.Unauthorized("milestone", id)
	}

	return milestone, nil
}

func (s *MilestoneService) writeError(op, id string, err error) error {
	if errors.Is(err, repository.ErrMilestoneNotFound) {
		return apperror.NotFound("milestone", id)
	}
	return apperror.Persistence(op, err)
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
