package service

import (
	"context"
	"time"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/progress"
	"github.com/Admintools08/BP/internal/repository"
)

// ProgressService loads a user's milestones and goals and hands them to the
// pure aggregation in package progress. Nothing is cached; every call
// recomputes from the stored milestones.
type ProgressService struct {
	milestoneRepo repository.MilestoneRepository
	goalRepo      repository.GoalRepository
	links         *CertificateLinks
}

func NewProgressService(milestoneRepo repository.MilestoneRepository, goalRepo repository.GoalRepository, links *CertificateLinks) *ProgressService {
	return &ProgressService{
		milestoneRepo: milestoneRepo,
		goalRepo:      goalRepo,
		links:         links,
	}
}

// DashboardStats computes the user's statistics for the calendar month of now.
func (s *ProgressService) DashboardStats(ctx context.Context, userID string, now time.Time, targetHoursPerMonth float64) (*model.DashboardStats, error) {
	milestones, err := s.milestoneRepo.Milestones(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list milestones", err)
	}

	activeGoals, err := s.goalRepo.CountByStatus(ctx, userID, model.GoalStatusActive)
	if err != nil {
		return nil, apperror.Persistence("count goals", err)
	}

	stats := progress.Dashboard(milestones, activeGoals, now, targetHoursPerMonth)

	err = s.links.resolve(ctx, userID, stats.RecentMilestones...)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// MilestonesForMonth returns the milestones created in the given UTC month,
// most recent first.
func (s *ProgressService) MilestonesForMonth(ctx context.Context, userID string, year int, month time.Month) ([]*model.Milestone, error) {
	milestones, err := s.milestoneRepo.Milestones(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list milestones", err)
	}

	inMonth := progress.ForMonth(milestones, year, month, time.UTC)

	err = s.links.resolve(ctx, userID, inMonth...)
	if err != nil {
		return nil, err
	}
	return inMonth, nil
}

// CurrentMonthProgress reports hours and progress for the month of now.
func (s *ProgressService) CurrentMonthProgress(ctx context.Context, userID string, now time.Time, targetHoursPerMonth float64) (*model.MonthProgress, error) {
	milestones, err := s.milestoneRepo.Milestones(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list milestones", err)
	}

	month := progress.Month(milestones, now.Year(), now.Month(), now.Location(), targetHoursPerMonth)

	err = s.links.resolve(ctx, userID, month.Milestones...)
	if err != nil {
		return nil, err
	}
	return &month, nil
}
