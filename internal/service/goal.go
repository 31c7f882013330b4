package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/metrics"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/validation"
	"github.com/google/uuid"
)

type GoalService struct {
	repo  repository.GoalRepository
	clock clock.Clock
}

func NewGoalService(repo repository.GoalRepository, clk clock.Clock) *GoalService {
	return &GoalService{
		repo:  repo,
		clock: clk,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, in model.GoalInput) (*model.Goal, error) {
	err := validation.ValidateGoal(in)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	goal := &model.Goal{
		ID:               uuid.New().String(),
		UserID:           userID,
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		TargetCompletion: in.TargetCompletion,
		Status:           model.GoalStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, apperror.Persistence("create goal", err)
	}

	return goal, nil
}

// Goal returns the goal if it exists and belongs to userID.
func (s *GoalService) Goal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, apperror.NotFound("goal", goalID)
	}
	if err != nil {
		return nil, apperror.Persistence("get goal", err)
	}

	if goal.UserID != userID {
		return nil, apperror.Unauthorized("goal", goalID)
	}

	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals, err := s.repo.Goals(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("list goals", err)
	}
	return goals, nil
}

// Update edits the descriptive fields of a goal. Status only changes through Transition.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, in model.GoalInput) (*model.Goal, error) {
	err := validation.ValidateGoal(in)
	if err != nil {
		return nil, err
	}

	goal, err := s.Goal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = strings.TrimSpace(in.Title)
	goal.Description = strings.TrimSpace(in.Description)
	goal.TargetCompletion = in.TargetCompletion
	goal.UpdatedAt = s.clock.Now().UTC()

	err = s.repo.Update(ctx, goal)
	if err != nil {
		return nil, s.writeError("update goal", goalID, err)
	}

	return goal, nil
}

// Transition moves an active goal to completed or abandoned.
// Every other change, including to the same status, is rejected.
func (s *GoalService) Transition(ctx context.Context, userID, goalID, status string) (*model.Goal, error) {
	err := validation.ValidateGoalStatus(status)
	if err != nil {
		return nil, err
	}

	goal, err := s.Goal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	from := goal.Status
	next := model.GoalStatus(status)
	if !from.CanTransition(next) {
		return nil, apperror.InvalidTransition(string(from), status)
	}

	goal.Status = next
	goal.UpdatedAt = s.clock.Now().UTC()

	err = s.repo.Transition(ctx, goal, from)
	if errors.Is(err, repository.ErrGoalStatusChanged) {
		// Another request moved or deleted the goal first.
		current, err := s.Goal(ctx, userID, goalID)
		if err != nil {
			return nil, err
		}
		return nil, apperror.InvalidTransition(string(current.Status), status)
	}
	if err != nil {
		return nil, s.writeError("transition goal", goalID, err)
	}

	metrics.GoalTransitions.WithLabelValues(status).Inc()

	return goal, nil
}

// Delete removes a goal. Milestones that referenced it keep the dangling id.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	_, err := s.Goal(ctx, userID, goalID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		return s.writeError("delete goal", goalID, err)
	}

	return nil
}

func (s *GoalService) writeError(op, goalID string, err error) error {
	if errors.Is(err, repository.ErrGoalNotFound) {
		return apperror.NotFound("goal", goalID)
	}
	return apperror.Persistence(op, err)
}
